package repository

import (
	"fmt"
	"time"

	"github.com/gihansgamage/sms-api/internal/models"
)

// stageColumns maps a stage prefix to its per-stage column names. Prefixes
// come from the workflow tables, never from user input.
type stageColumnSet struct {
	Flag    string
	Date    string
	Comment string
}

var stageColumns = map[string]stageColumnSet{
	"dean":     {"is_dean_approved", "dean_approval_date", "dean_comment"},
	"premises": {"is_premises_approved", "premises_approval_date", "premises_comment"},
	"ar":       {"is_ar_approved", "ar_approval_date", "ar_comment"},
	"vc":       {"is_vc_approved", "vc_approval_date", "vc_comment"},
}

// AdvanceStageParams describes one conditional stage advance. The update is
// applied only while the row still sits at From; zero rows affected signals
// a concurrent advance or finalization.
type AdvanceStageParams struct {
	ID          string
	From        models.Stage
	To          models.Stage
	StagePrefix string
	ApprovedAt  time.Time
	Comment     *string
}

// advanceStageQuery renders the conditional stage-advance UPDATE for a table.
// When final is true the approved_date column is stamped as well.
func advanceStageQuery(table, prefix string, final bool) (string, error) {
	cols, ok := stageColumns[prefix]
	if !ok {
		return "", fmt.Errorf("unknown stage prefix %q", prefix)
	}
	extra := ""
	if final {
		extra = ", approved_date = $1"
	}
	query := fmt.Sprintf(
		`UPDATE %s SET %s = TRUE, %s = $1, %s = $2, status = $3%s WHERE id = $4 AND status = $5`,
		table, cols.Flag, cols.Date, cols.Comment, extra,
	)
	return query, nil
}

// rejectQuery renders the conditional reject UPDATE for a table.
func rejectQuery(table string) string {
	return fmt.Sprintf(
		`UPDATE %s SET status = $1, rejection_reason = $2 WHERE id = $3 AND status = $4`,
		table,
	)
}
