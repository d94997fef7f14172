package study

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a top-level curriculum grouping such as mathematics or language.
type Category string

const (
	CategoryJapanese      Category = "japanese"
	CategoryMathematics   Category = "mathematics"
	CategoryEnglish       Category = "english"
	CategoryScience       Category = "science"
	CategorySocialStudies Category = "social_studies"
	CategoryInformation   Category = "information"
	CategoryOther         Category = "other"
)

// Categories lists every category in catalog order.
var Categories = []Category{
	CategoryJapanese,
	CategoryMathematics,
	CategoryEnglish,
	CategoryScience,
	CategorySocialStudies,
	CategoryInformation,
	CategoryOther,
}

// catalogLabels maps the labels stored by the curriculum catalog to categories.
var catalogLabels = map[string]Category{
	"国語":  CategoryJapanese,
	"数学":  CategoryMathematics,
	"英語":  CategoryEnglish,
	"理科":  CategoryScience,
	"社会":  CategorySocialStudies,
	"情報":  CategoryInformation,
	"その他": CategoryOther,
}

// ParseCategory accepts either a category key or a catalog label.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	if c, ok := catalogLabels[s]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

func (c *Category) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan category from %T", src)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) Value() (driver.Value, error) {
	return string(c), nil
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	return c.UnmarshalText([]byte(value.Value))
}
