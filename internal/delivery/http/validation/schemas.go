package validation

const statusEnum = `["Applied", "Interview Scheduled", "Interview Completed", "Offer Received", "Rejected", "Withdrawn"]`

var CreateApplication = MustCompile("create application", `{
	"type": "object",
	"additionalProperties": false,
	"required": ["company", "position", "date_applied"],
	"properties": {
		"company":      {"type": "string", "minLength": 1, "maxLength": 200},
		"position":     {"type": "string", "minLength": 1, "maxLength": 200},
		"status":       {"type": "string", "enum": `+statusEnum+`},
		"date_applied": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"notes":        {"type": "string", "maxLength": 5000}
	}
}`)

var UpdateApplication = MustCompile("update application", `{
	"type": "object",
	"additionalProperties": false,
	"minProperties": 1,
	"properties": {
		"company":      {"type": "string", "minLength": 1, "maxLength": 200},
		"position":     {"type": "string", "minLength": 1, "maxLength": 200},
		"status":       {"type": "string", "enum": `+statusEnum+`},
		"date_applied": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"notes":        {"type": "string", "maxLength": 5000}
	}
}`)

var ReplaceSkills = MustCompile("replace skills", `{
	"type": "object",
	"additionalProperties": false,
	"required": ["skills"],
	"properties": {
		"skills": {
			"type": "array",
			"maxItems": 200,
			"items": {"type": "string", "maxLength": 100}
		}
	}
}`)
