package grading

import (
	"fmt"

	apperrors "github.com/rafkix/cefr-exam-service/internal/errors"
	"github.com/rafkix/cefr-exam-service/internal/models"
)

// BandRow maps one score threshold to its scaled band and CEFR level.
type BandRow struct {
	Threshold   int              `json:"threshold"`
	ScaledScore float64          `json:"scaled_score"`
	CEFRLevel   models.CEFRLevel `json:"cefr_level"`
}

// BandTable is an ordered conversion table, highest threshold first. The
// first row whose threshold is <= the input wins; below the last row the
// lowest band applies. Tables are configuration data: each skill owns its
// own table and the traversal never changes.
type BandTable []BandRow

// Score converts a 0-100 integer score into (scaledScore, cefrLevel).
// Negative input is structurally invalid and rejected at the boundary.
func (t BandTable) Score(percent int) (float64, models.CEFRLevel, error) {
	if percent < 0 {
		return 0, models.BelowA1, apperrors.NewValidationError("percent", "must not be negative", percent)
	}
	for _, row := range t {
		if percent >= row.Threshold {
			return row.ScaledScore, row.CEFRLevel, nil
		}
	}
	return 0, models.BelowA1, nil
}

// Validate checks that the table is strictly descending by threshold and
// monotonic in both scaled score and CEFR level, so a higher input can never
// produce a lower band.
func (t BandTable) Validate() error {
	for i := 1; i < len(t); i++ {
		prev, cur := t[i-1], t[i]
		if cur.Threshold >= prev.Threshold {
			return fmt.Errorf("band table row %d: threshold %d not below previous %d", i, cur.Threshold, prev.Threshold)
		}
		if cur.ScaledScore > prev.ScaledScore {
			return fmt.Errorf("band table row %d: scaled score %.1f exceeds previous %.1f", i, cur.ScaledScore, prev.ScaledScore)
		}
		if cur.CEFRLevel.Rank() > prev.CEFRLevel.Rank() {
			return fmt.Errorf("band table row %d: level %s outranks previous %s", i, cur.CEFRLevel, prev.CEFRLevel)
		}
	}
	return nil
}

// Default tables per skill. Reading and listening follow the published
// raw-count conversion scales (correct answers out of 40); because a graded
// pass reports an integer on the same 0-100 axis, the tables are kept as
// data rather than baked into arithmetic and can be swapped per deployment.
var (
	ReadingBands = BandTable{
		{39, 9.0, models.C2},
		{37, 8.5, models.C2},
		{35, 8.0, models.C1},
		{33, 7.5, models.C1},
		{30, 7.0, models.C1},
		{27, 6.5, models.B2},
		{23, 6.0, models.B2},
		{19, 5.5, models.B2},
		{15, 5.0, models.B1},
		{13, 4.5, models.B1},
		{10, 4.0, models.A2},
		{8, 3.5, models.A2},
		{6, 3.0, models.A1},
	}

	ListeningBands = BandTable{
		{39, 9.0, models.C2},
		{37, 8.5, models.C2},
		{35, 8.0, models.C1},
		{32, 7.5, models.C1},
		{30, 7.0, models.C1},
		{26, 6.5, models.B2},
		{23, 6.0, models.B2},
		{18, 5.5, models.B2},
		{16, 5.0, models.B1},
		{13, 4.5, models.B1},
		{10, 4.0, models.A2},
		{8, 3.5, models.A2},
		{6, 3.0, models.A1},
	}

	WritingBands = BandTable{
		{90, 9.0, models.C2},
		{85, 8.5, models.C2},
		{80, 8.0, models.C1},
		{75, 7.5, models.C1},
		{70, 7.0, models.C1},
		{65, 6.5, models.B2},
		{60, 6.0, models.B2},
		{55, 5.5, models.B2},
		{50, 5.0, models.B1},
		{45, 4.5, models.B1},
		{40, 4.0, models.A2},
		{35, 3.5, models.A2},
		{30, 3.0, models.A1},
	}
)

// TableForSkill selects the conversion table for a skill. Skills without a
// dedicated table fall back to the reading scale.
func TableForSkill(skill models.SkillType) BandTable {
	switch skill {
	case models.SkillListening:
		return ListeningBands
	case models.SkillWriting:
		return WritingBands
	default:
		return ReadingBands
	}
}
