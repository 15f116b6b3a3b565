package practice

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type override struct {
	Code       string `db:"customer_code"`
	PracticeID string `db:"practice_id"`
}

// LoadOverrides reads the customer_code_override table into a code → id
// map suitable for Options.Static.  Rows with a disabled flag are skipped.
func LoadOverrides(ctx context.Context, db *sqlx.DB) (map[string]string, error) {
	const q = `
        SELECT customer_code, practice_id
        FROM   customer_code_override
        WHERE  enabled = TRUE`
	var rows []override
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Code] = r.PracticeID
	}
	return out, nil
}
