package blog

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/blog/entity"
)

func validPost() *entity.Post {
	return &entity.Post{
		Title:    "Getting Started MERN Stack",
		Slug:     "getting-started-mern-stack",
		Excerpt:  "A walkthrough of a first full-stack project.",
		Content:  "Start with the backend, then wire the frontend.",
		Category: "MERN Stack",
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, Validate(validPost()))
}

func TestValidateRequiredFields(t *testing.T) {
	p := validPost()
	p.Title = ""
	assert.Error(t, Validate(p))

	p = validPost()
	p.Excerpt = ""
	assert.Error(t, Validate(p))

	p = validPost()
	p.Content = ""
	assert.Error(t, Validate(p))
}

func TestValidateLengthCaps(t *testing.T) {
	p := validPost()
	p.Title = strings.Repeat("x", 201)
	assert.Error(t, Validate(p))

	p = validPost()
	p.Excerpt = strings.Repeat("x", 301)
	assert.Error(t, Validate(p))
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	p := validPost()
	p.Title = strings.Repeat("я", 200)
	assert.NoError(t, Validate(p))

	p = validPost()
	p.Title = strings.Repeat("я", 201)
	assert.Error(t, Validate(p))

	p = validPost()
	p.Excerpt = strings.Repeat("я", 300)
	assert.NoError(t, Validate(p))
}

func TestValidateCategoryEnum(t *testing.T) {
	p := validPost()
	p.Category = "Gardening"
	err := Validate(p)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestApplyDefaultsAndSlug(t *testing.T) {
	p := &entity.Post{Title: " My First Post! ", Excerpt: "e", Content: "c"}
	applyDefaults(p)

	assert.Equal(t, "My First Post!", p.Title)
	assert.Equal(t, entity.DefaultAuthor, p.Author)
	assert.Equal(t, entity.DefaultCoverImage, p.CoverImage)
	assert.Equal(t, entity.DefaultCategory, p.Category)
	assert.NotNil(t, p.Tags)
}

// emptyDriver answers every query with zero rows, standing in for a store
// whose row vanished between operations.
type emptyDriver struct{}

func (emptyDriver) Open(string) (driver.Conn, error) { return emptyConn{}, nil }

type emptyConn struct{}

func (emptyConn) Prepare(string) (driver.Stmt, error) { return emptyStmt{}, nil }
func (emptyConn) Close() error                        { return nil }
func (emptyConn) Begin() (driver.Tx, error)           { return nil, errors.New("transactions unsupported") }

type emptyStmt struct{}

func (emptyStmt) Close() error                               { return nil }
func (emptyStmt) NumInput() int                              { return -1 }
func (emptyStmt) Exec([]driver.Value) (driver.Result, error) { return driver.RowsAffected(0), nil }
func (emptyStmt) Query([]driver.Value) (driver.Rows, error)  { return emptyRows{}, nil }

type emptyRows struct{}

func (emptyRows) Columns() []string         { return nil }
func (emptyRows) Close() error              { return nil }
func (emptyRows) Next([]driver.Value) error { return io.EOF }

func init() { sql.Register("blog_empty", emptyDriver{}) }

func TestGetMissingRowIsNotFound(t *testing.T) {
	db, err := sqlx.Open("blog_empty", "")
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, nil)

	_, err = svc.GetByID(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetBySlug(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEstimateReadTime(t *testing.T) {
	assert.Equal(t, 1, EstimateReadTime(""))
	assert.Equal(t, 1, EstimateReadTime("a few words only"))
	assert.Equal(t, 1, EstimateReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, EstimateReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 5, EstimateReadTime(strings.Repeat("word ", 1000)))
}
