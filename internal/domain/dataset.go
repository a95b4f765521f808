package domain

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// MaxNameLength bounds dataset and class names, counted in runes to match
// the schema's maxLength.
const MaxNameLength = 100

// mbidPattern matches the canonical 8-4-4-4-12 hexadecimal UUID form used
// for recording identifiers.
var mbidPattern = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)

// Dataset is a named, owned classification specification. Classes are
// existentially owned: they never outlive their parent dataset.
type Dataset struct {
	ID          string
	Name        string
	Description *string
	Public      bool
	Author      string
	Created     time.Time
	Classes     []Class
}

// Class groups recording identifiers within a dataset. Class ids are
// assigned at insertion time and are not stable across updates.
type Class struct {
	ID          string
	Name        string
	Description *string
	Recordings  []string
}

// DatasetSummary is the listing view of a dataset, without classes.
type DatasetSummary struct {
	ID          string
	Name        string
	Description *string
	Author      string
	Created     time.Time
}

func IsValidMBID(value string) bool {
	return mbidPattern.MatchString(value)
}

func (d Dataset) Validate() error {
	if d.ID == "" {
		return ErrDatasetIDRequired
	}
	if d.Name == "" || utf8.RuneCountInString(d.Name) > MaxNameLength {
		return ErrInvalidName
	}
	if d.Author == "" {
		return ErrAuthorRequired
	}
	for _, cls := range d.Classes {
		if err := cls.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Class) Validate() error {
	if c.ID == "" {
		return ErrClassIDRequired
	}
	if c.Name == "" || utf8.RuneCountInString(c.Name) > MaxNameLength {
		return ErrInvalidName
	}
	for _, mbid := range c.Recordings {
		if !IsValidMBID(mbid) {
			return ErrInvalidMBID
		}
	}
	return nil
}
