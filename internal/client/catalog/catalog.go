// Package catalog holds the pre-authored quizzes offered without video
// generation, one per category.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
)

//go:embed catalog.yaml
var embedded []byte

type entry struct {
	ID            int64    `yaml:"id"`
	Category      string   `yaml:"category"`
	Default       bool     `yaml:"default"`
	Question      string   `yaml:"question"`
	Options       []string `yaml:"options"`
	CorrectAnswer int      `yaml:"correct_answer"`
	Explanation   string   `yaml:"explanation"`
	RoadElements  []string `yaml:"road_elements"`
}

type file struct {
	Quizzes []entry `yaml:"quizzes"`
}

type Catalog struct {
	fallback   models.Quiz
	byCategory map[string]models.Quiz
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog file. An empty path means the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Quizzes) == 0 {
		return nil, errors.New("catalog: no quizzes")
	}

	c := &Catalog{byCategory: make(map[string]models.Quiz)}
	haveDefault := false
	for i, e := range f.Quizzes {
		q := models.Quiz{
			ID:            e.ID,
			Category:      e.Category,
			Question:      e.Question,
			Options:       e.Options,
			CorrectAnswer: e.CorrectAnswer,
			Explanation:   e.Explanation,
			RoadElements:  e.RoadElements,
		}
		if err := check(q); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := c.byCategory[q.Category]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate category %q", i, q.Category)
		}
		c.byCategory[q.Category] = q
		if e.Default && !haveDefault {
			c.fallback = q
			haveDefault = true
		}
	}
	if !haveDefault {
		c.fallback = c.byCategory[f.Quizzes[0].Category]
	}
	return c, nil
}

func check(q models.Quiz) error {
	switch {
	case q.ID <= 0:
		return errors.New("missing id")
	case !IsCategory(q.Category):
		return fmt.Errorf("%w: %q", ErrUnknownCategory, q.Category)
	case q.Question == "":
		return errors.New("empty question")
	case len(q.Options) < 2:
		return errors.New("fewer than two options")
	case q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options):
		return fmt.Errorf("correct answer %d out of range", q.CorrectAnswer)
	}
	return nil
}

// Pick returns the quiz for category. Categories without an authored quiz
// get the default quiz relabelled to the requested category.
func (c *Catalog) Pick(category string) (models.Quiz, error) {
	if !IsCategory(category) {
		return models.Quiz{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	q, ok := c.byCategory[category]
	if !ok {
		q = c.fallback
		q.Category = category
	}
	return clone(q), nil
}

// Len is the number of authored quizzes.
func (c *Catalog) Len() int {
	return len(c.byCategory)
}

func clone(q models.Quiz) models.Quiz {
	q.Options = append([]string(nil), q.Options...)
	if q.RoadElements != nil {
		q.RoadElements = append([]string(nil), q.RoadElements...)
	}
	return q
}
