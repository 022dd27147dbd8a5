package project

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/project/entity"
)

func validProject() *entity.Project {
	return &entity.Project{
		Title:               "Portfolio Site",
		Description:         "A personal portfolio web application.",
		DetailedDescription: "Public site with projects, blog and contact form backed by a REST API.",
		Technologies:        []string{"Go", "Postgres", "React"},
		Category:            "Full Stack",
		Status:              "completed",
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, Validate(validProject()))
}

func TestValidateRequiredFields(t *testing.T) {
	p := validProject()
	p.Title = ""
	assert.Error(t, Validate(p))

	p = validProject()
	p.Description = ""
	assert.Error(t, Validate(p))

	p = validProject()
	p.Technologies = []string{}
	assert.Error(t, Validate(p))

	p = validProject()
	p.Technologies = []string{"Go", "  "}
	assert.Error(t, Validate(p))
}

func TestValidateLengthCaps(t *testing.T) {
	p := validProject()
	p.Title = strings.Repeat("x", 101)
	assert.Error(t, Validate(p))

	p = validProject()
	p.Description = strings.Repeat("x", 501)
	assert.Error(t, Validate(p))

	p = validProject()
	p.Challenges = strings.Repeat("x", 1001)
	assert.Error(t, Validate(p))
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	// 100 Cyrillic characters are 200 bytes; the cap is on characters
	p := validProject()
	p.Title = strings.Repeat("п", 100)
	assert.NoError(t, Validate(p))

	p = validProject()
	p.Title = strings.Repeat("п", 101)
	assert.Error(t, Validate(p))

	p = validProject()
	p.Description = strings.Repeat("é", 500)
	p.Challenges = strings.Repeat("é", 1000)
	p.Solutions = strings.Repeat("é", 1000)
	assert.NoError(t, Validate(p))
}

func TestValidateEnums(t *testing.T) {
	p := validProject()
	p.Category = "Machine Learning"
	err := Validate(p)
	require.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	p = validProject()
	p.Status = "done"
	assert.Error(t, Validate(p))
}

func TestValidateURLs(t *testing.T) {
	p := validProject()
	p.LiveURL = "ftp://example.com"
	assert.Error(t, Validate(p))

	p = validProject()
	p.GithubURL = "github.com/no-scheme"
	assert.Error(t, Validate(p))

	p = validProject()
	p.LiveURL = "https://demo.example.com"
	p.GithubURL = "http://github.com/someone/repo"
	assert.NoError(t, Validate(p))

	// empty URLs are fine, the fields are optional
	p = validProject()
	p.LiveURL = ""
	p.GithubURL = ""
	assert.NoError(t, Validate(p))
}

func TestValidateOrderUnconstrained(t *testing.T) {
	// order is a sort key, not a 1-3 slot; any value passes
	for _, order := range []int{-5, 0, 2, 99} {
		p := validProject()
		p.Order = order
		assert.NoError(t, Validate(p), "order %d", order)
	}
}

func TestApplyDefaults(t *testing.T) {
	p := &entity.Project{Title: "  Spaced  "}
	applyDefaults(p)

	assert.Equal(t, "Spaced", p.Title)
	assert.Equal(t, entity.DefaultCategory, p.Category)
	assert.Equal(t, entity.DefaultStatus, p.Status)
	assert.Equal(t, entity.DefaultImageURL, p.ImageURL)
	assert.NotNil(t, p.Technologies)
	assert.NotNil(t, p.Features)
}
