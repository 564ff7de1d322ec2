package notion

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jomei/notionapi"
)

// Property access helpers. Every lookup takes a candidate name list in
// priority order; the first property present wins. Text extraction
// accepts whatever shape the workspace uses (title, rich_text, formula,
// rollup), so a renamed or retyped property only needs a schema entry.

func pick(props notionapi.Properties, candidates []string) (notionapi.Property, bool) {
	for _, name := range candidates {
		if prop, ok := props[name]; ok && prop != nil {
			return prop, true
		}
	}
	return nil, false
}

// pickName returns the first candidate name present on the page, used to
// decide which property to write back to.
func pickName(props notionapi.Properties, candidates []string) (string, bool) {
	for _, name := range candidates {
		if prop, ok := props[name]; ok && prop != nil {
			return name, true
		}
	}
	return "", false
}

func richTextPlain(rts []notionapi.RichText) string {
	var sb strings.Builder
	for _, rt := range rts {
		sb.WriteString(rt.PlainText)
	}
	return strings.TrimSpace(sb.String())
}

// propertyText extracts a text-like value from any supported property
// shape
func propertyText(prop notionapi.Property) string {
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		return richTextPlain(p.Title)
	case *notionapi.RichTextProperty:
		return richTextPlain(p.RichText)
	case *notionapi.FormulaProperty:
		if s := strings.TrimSpace(p.Formula.String); s != "" {
			return s
		}
		if p.Formula.Type == notionapi.FormulaTypeNumber {
			return strconv.FormatFloat(p.Formula.Number, 'f', -1, 64)
		}
	case *notionapi.RollupProperty:
		switch p.Rollup.Type {
		case notionapi.RollupTypeArray:
			for _, item := range p.Rollup.Array {
				if s := propertyText(item); s != "" {
					return s
				}
			}
		case notionapi.RollupTypeNumber:
			return strconv.FormatFloat(p.Rollup.Number, 'f', -1, 64)
		case notionapi.RollupTypeDate:
			if p.Rollup.Date != nil && p.Rollup.Date.Start != nil {
				return time.Time(*p.Rollup.Date.Start).Format(time.RFC3339)
			}
		}
	case *notionapi.SelectProperty:
		return strings.TrimSpace(p.Select.Name)
	}
	return ""
}

func textOf(props notionapi.Properties, candidates []string) string {
	for _, name := range candidates {
		prop, ok := props[name]
		if !ok || prop == nil {
			continue
		}
		if s := propertyText(prop); s != "" {
			return s
		}
	}
	return ""
}

func selectOf(props notionapi.Properties, candidates []string) string {
	for _, name := range candidates {
		if p, ok := props[name].(*notionapi.SelectProperty); ok {
			if n := strings.TrimSpace(p.Select.Name); n != "" {
				return n
			}
		}
	}
	return ""
}

func checkboxOf(props notionapi.Properties, candidates []string) bool {
	for _, name := range candidates {
		if p, ok := props[name].(*notionapi.CheckboxProperty); ok {
			return p.Checkbox
		}
	}
	return false
}

func numberOf(props notionapi.Properties, candidates []string) int {
	for _, name := range candidates {
		if p, ok := props[name].(*notionapi.NumberProperty); ok {
			return int(p.Number)
		}
	}
	return 0
}

func dateOf(props notionapi.Properties, candidates []string) *time.Time {
	for _, name := range candidates {
		if p, ok := props[name].(*notionapi.DateProperty); ok {
			if p.Date != nil && p.Date.Start != nil {
				t := time.Time(*p.Date.Start)
				return &t
			}
		}
	}
	return nil
}

func urlOf(props notionapi.Properties, candidates []string) string {
	for _, name := range candidates {
		if p, ok := props[name].(*notionapi.URLProperty); ok && p.URL != "" {
			return p.URL
		}
	}
	return ""
}

func relationIDs(props notionapi.Properties, candidates []string) []string {
	for _, name := range candidates {
		if p, ok := props[name].(*notionapi.RelationProperty); ok && len(p.Relation) > 0 {
			ids := make([]string, 0, len(p.Relation))
			for _, rel := range p.Relation {
				ids = append(ids, rel.ID.String())
			}
			return ids
		}
	}
	return nil
}

func createdTimeOf(props notionapi.Properties, candidates []string) (time.Time, bool) {
	for _, name := range candidates {
		if p, ok := props[name].(*notionapi.CreatedTimeProperty); ok {
			return p.CreatedTime, true
		}
	}
	return time.Time{}, false
}

// urlsByPrefix collects URL property values whose property name starts
// with any of the prefixes, in name order for stable output.
func urlsByPrefix(props notionapi.Properties, prefixes []string) []string {
	var names []string
	for name, prop := range props {
		p, ok := prop.(*notionapi.URLProperty)
		if !ok || p.URL == "" {
			continue
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(name, prefix) {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)

	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, props[name].(*notionapi.URLProperty).URL)
	}
	return urls
}
