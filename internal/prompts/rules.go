package prompts

import (
	"embed"
	"fmt"

	"github.com/nugget/promptgen/internal/requirements"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Rule pairs a stage template with the condition that enables it.
type Rule struct {
	Key       string // stable identifier, e.g. "converter_resource"
	Tag       string // output name, e.g. "06-converter-resource"
	Requires  string // human-readable condition, for listings
	Condition func(requirements.Record) bool
	Template  string
}

// Render renders the rule's template for rec.
func (r Rule) Render(rec requirements.Record) (string, error) {
	out, err := Render(r.Template, VarsFor(rec))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", r.Tag, err)
	}
	return out, nil
}

// rules is the stage table in emission order. It is built once at init
// and never modified; callers get copies from [Rules].
var rules = []Rule{
	{
		Key:       "contracts",
		Tag:       "01-contracts",
		Requires:  "always",
		Condition: func(requirements.Record) bool { return true },
	},
	{
		Key:       "validation",
		Tag:       "02-validation",
		Requires:  "hasValidation",
		Condition: func(r requirements.Record) bool { return r.HasValidation },
	},
	{
		Key:       "domain",
		Tag:       "03-domain-model",
		Requires:  "hasDomainModel",
		Condition: func(r requirements.Record) bool { return r.HasDomainModel },
	},
	{
		Key:       "events",
		Tag:       "04-messaging-events",
		Requires:  "hasEvents",
		Condition: func(r requirements.Record) bool { return r.HasEvents },
	},
	{
		Key:       "controller",
		Tag:       "05-controller",
		Requires:  "hasController",
		Condition: func(r requirements.Record) bool { return r.HasController },
	},
	{
		// Converter and resource classes are generated together, so both
		// flags must be set.
		Key:       "converter_resource",
		Tag:       "06-converter-resource",
		Requires:  "hasConverter && hasResource",
		Condition: func(r requirements.Record) bool { return r.HasConverter && r.HasResource },
	},
	{
		Key:       "query_lang",
		Tag:       "07-query-language",
		Requires:  "hasQueryLang",
		Condition: func(r requirements.Record) bool { return r.HasQueryLang },
	},
	{
		Key:       "tests",
		Tag:       "08-tests",
		Requires:  "hasTests",
		Condition: func(r requirements.Record) bool { return r.HasTests },
	},
	{
		Key:       "autofac",
		Tag:       "09-autofac-registration",
		Requires:  "hasAutofacModuleRegistration",
		Condition: func(r requirements.Record) bool { return r.HasAutofacModuleRegistration },
	},
}

func init() {
	for i := range rules {
		data, err := templateFS.ReadFile("templates/" + rules[i].Tag + ".tmpl")
		if err != nil {
			panic(fmt.Sprintf("prompts: missing template for %s: %v", rules[i].Tag, err))
		}
		rules[i].Template = string(data)
	}
}

// Rules returns the full stage table in emission order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Select returns the rules enabled for rec, in emission order. The
// contracts stage is always included.
func Select(rec requirements.Record) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Condition(rec) {
			out = append(out, r)
		}
	}
	return out
}
