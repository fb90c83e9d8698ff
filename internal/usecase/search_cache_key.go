package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

const rankedJobsKeyPrefix = "jobs:ranked:"

type rankedJobsCacheKeyInput struct {
	Search         string `json:"search"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RankedJobsCacheKey scopes a listing to the user because scores depend on their skills.
// Location and type keep their case since those filters are case-sensitive.
func RankedJobsCacheKey(userID uuid.UUID, params JobListParams) string {
	in := rankedJobsCacheKeyInput{
		Search:         normalizeSearchValue(params.Search),
		Location:       strings.TrimSpace(params.Location),
		EmploymentType: strings.TrimSpace(params.EmploymentType),
		Limit:          params.Limit,
		Offset:         params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return rankedJobsKeyPrefix + userID.String() + ":" + hex.EncodeToString(sum[:])
}

// RankedJobsUserPattern matches every cached listing of one user.
func RankedJobsUserPattern(userID uuid.UUID) string {
	return rankedJobsKeyPrefix + userID.String() + ":*"
}

// RankedJobsAllPattern matches every cached listing.
func RankedJobsAllPattern() string {
	return rankedJobsKeyPrefix + "*"
}
