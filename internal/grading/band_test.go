package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rafkix/cefr-exam-service/internal/errors"
	"github.com/rafkix/cefr-exam-service/internal/models"
)

func TestBandTableScore(t *testing.T) {
	tests := []struct {
		percent   int
		wantScore float64
		wantLevel models.CEFRLevel
	}{
		{100, 9.0, models.C2},
		{39, 9.0, models.C2},
		{38, 8.5, models.C2},
		{37, 8.5, models.C2},
		{35, 8.0, models.C1},
		{30, 7.0, models.C1},
		{27, 6.5, models.B2},
		{23, 6.0, models.B2},
		{19, 5.5, models.B2},
		{15, 5.0, models.B1},
		{13, 4.5, models.B1},
		{10, 4.0, models.A2},
		{8, 3.5, models.A2},
		{6, 3.0, models.A1},
		{5, 0, models.BelowA1},
		{0, 0, models.BelowA1},
	}

	for _, tt := range tests {
		scaled, level, err := ReadingBands.Score(tt.percent)
		require.NoError(t, err)
		assert.Equal(t, tt.wantScore, scaled, "percent=%d", tt.percent)
		assert.Equal(t, tt.wantLevel, level, "percent=%d", tt.percent)
	}
}

func TestBandTableRejectsNegative(t *testing.T) {
	_, _, err := ReadingBands.Score(-1)
	require.Error(t, err)

	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestBandTableMonotonic(t *testing.T) {
	tables := map[string]BandTable{
		"reading":   ReadingBands,
		"listening": ListeningBands,
		"writing":   WritingBands,
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, table.Validate())

			prevScore := -1.0
			prevRank := -1
			for p := 0; p <= 100; p++ {
				scaled, level, err := table.Score(p)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, scaled, prevScore, "scaled score dropped at percent=%d", p)
				assert.GreaterOrEqual(t, level.Rank(), prevRank, "level dropped at percent=%d", p)
				prevScore = scaled
				prevRank = level.Rank()
			}
		})
	}
}

func TestBandTableValidateCatchesBadTables(t *testing.T) {
	notDescending := BandTable{{10, 4.0, models.A2}, {10, 3.5, models.A2}}
	assert.Error(t, notDescending.Validate())

	scoreInversion := BandTable{{20, 4.0, models.A2}, {10, 5.0, models.B1}}
	assert.Error(t, scoreInversion.Validate())

	levelInversion := BandTable{{20, 5.0, models.A2}, {10, 5.0, models.B1}}
	assert.Error(t, levelInversion.Validate())
}

func TestTableForSkill(t *testing.T) {
	scaled, level, err := TableForSkill(models.SkillReading).Score(39)
	require.NoError(t, err)
	assert.Equal(t, 9.0, scaled)
	assert.Equal(t, models.C2, level)

	scaled, _, err = TableForSkill(models.SkillWriting).Score(90)
	require.NoError(t, err)
	assert.Equal(t, 9.0, scaled)

	scaled, _, err = TableForSkill(models.SkillListening).Score(32)
	require.NoError(t, err)
	assert.Equal(t, 7.5, scaled)

	// Skills without a dedicated table use the reading scale.
	scaled, _, err = TableForSkill(models.SkillSpeaking).Score(39)
	require.NoError(t, err)
	assert.Equal(t, 9.0, scaled)
}
