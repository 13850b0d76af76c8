package prompts

import (
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

// Patch: набор присланных полей. Важно само наличие ключа; nil значит null.
type Patch map[tasks.Field]*string

// DecodePatch reads a JSON object, keeping only known prompt fields.
func DecodePatch(body []byte) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.Invalid("invalid json")
	}

	p := Patch{}
	for _, f := range []tasks.Field{
		tasks.FieldReading, tasks.FieldQuestion, tasks.FieldNotes,
		tasks.FieldTopic, tasks.FieldAudioFile,
	} {
		v, ok := raw[string(f)]
		if !ok {
			continue
		}
		if string(v) == "null" {
			p[f] = nil
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, domain.Invalid("field %s must be a string", f)
		}
		p[f] = &s
	}
	return p, nil
}

func (p Patch) Has(f tasks.Field) bool {
	_, ok := p[f]
	return ok
}

func (p *Prompt) field(f tasks.Field) **string {
	switch f {
	case tasks.FieldReading:
		return &p.Reading
	case tasks.FieldQuestion:
		return &p.Question
	case tasks.FieldNotes:
		return &p.Notes
	case tasks.FieldTopic:
		return &p.Topic
	case tasks.FieldAudioFile:
		return &p.AudioFile
	}
	return nil
}

// Value returns the string value of a field, "" when unset.
func (p *Prompt) Value(f tasks.Field) string {
	ptr := p.field(f)
	if ptr == nil || *ptr == nil {
		return ""
	}
	return **ptr
}

func strPtr(s string) *string { return &s }
