package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

func TestResolveItemConfigDirectHit(t *testing.T) {
	engine := NewEngine(nil)
	structure := map[string]models.ItemConfig{
		"lesson_1": {Type: models.ItemTypeLesson, Title: "Intro"},
	}

	cfg := engine.ResolveItemConfig("lesson_1", structure)
	require.NotNil(t, cfg)
	assert.Equal(t, "Intro", cfg.Title)
}

func TestResolveItemConfigLegacyRemap(t *testing.T) {
	engine := NewEngine(nil)
	structure := map[string]models.ItemConfig{
		"assignment_l5_7": {Type: models.ItemTypeAssignment, Title: "Unit 5 Assignment"},
	}

	cfg := engine.ResolveItemConfig("12l5_7", structure)
	require.NotNil(t, cfg)
	assert.Equal(t, structure["assignment_l5_7"], *cfg)
}

func TestResolveItemConfigUnresolved(t *testing.T) {
	engine := NewEngine(nil)
	structure := map[string]models.ItemConfig{
		"lesson_1": {Type: models.ItemTypeLesson},
	}

	assert.Nil(t, engine.ResolveItemConfig("missing", structure))
	// Legacy pattern matches but the remapped id is not configured either.
	assert.Nil(t, engine.ResolveItemConfig("3l9_9", structure))
}
