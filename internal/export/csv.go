package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// Header is the first line of every tracker export.
var Header = []string{"Company", "Position", "Status", "Date Applied", "Notes"}

type Row struct {
	Company     string
	Position    string
	Status      string
	DateApplied string
	Notes       string
}

func (r Row) Fields() []string {
	return []string{r.Company, r.Position, r.Status, r.DateApplied, r.Notes}
}

// WriteCSV writes the header and rows as comma separated UTF-8. Fields holding a comma,
// quote or line break are quoted.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func FileName(now time.Time) string {
	return fmt.Sprintf("job-tracker-%s.csv", now.Format("2006-01-02"))
}
