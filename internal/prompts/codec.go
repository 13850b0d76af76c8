package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

var errMalformed = errors.New("malformed document")

// порядок полей, когда задание записи неизвестно
var allFields = []tasks.Field{
	tasks.FieldReading, tasks.FieldQuestion, tasks.FieldAudioFile,
	tasks.FieldNotes, tasks.FieldTopic,
}

func (p Prompt) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"id":`)
	b.WriteString(strconv.Itoa(p.ID))

	written := map[string]bool{"id": true}
	write := func(key string, v []byte) {
		k, _ := json.MarshalNoEscape(key)
		b.WriteByte(',')
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
		written[key] = true
	}

	kind, known := tasks.KindOf(p.task)
	fields := allFields
	if known {
		fields = kind.Fields
	}

	for _, f := range fields {
		key := string(f)
		if raw, ok := p.extra[key]; ok {
			write(key, raw)
			continue
		}
		v := *p.field(f)
		switch {
		case v != nil:
			enc, err := json.MarshalNoEscape(*v)
			if err != nil {
				return nil, err
			}
			write(key, enc)
		case known || f == tasks.FieldAudioFile:
			write(key, []byte("null"))
		}
	}

	// строковые поля чужого задания тоже не теряем
	for _, f := range allFields {
		if v := *p.field(f); v != nil && !written[string(f)] {
			enc, err := json.MarshalNoEscape(*v)
			if err != nil {
				return nil, err
			}
			write(string(f), enc)
		}
	}

	keys := make([]string, 0, len(p.extra))
	for k := range p.extra {
		if !written[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		write(k, p.extra[k])
	}

	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON accepts records with off-type values: they land in extra
// and survive the next write unchanged.
func (p *Prompt) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Prompt{}
	if v, ok := raw["id"]; ok {
		var id float64
		if err := json.Unmarshal(v, &id); err != nil {
			return fmt.Errorf("prompt id: %w", err)
		}
		p.ID = int(id)
		delete(raw, "id")
	}

	for _, f := range allFields {
		v, ok := raw[string(f)]
		if !ok {
			continue
		}
		if string(bytes.TrimSpace(v)) == "null" {
			delete(raw, string(f))
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue // остаётся в extra
		}
		*p.field(f) = &s
		delete(raw, string(f))
	}

	if len(raw) > 0 {
		p.extra = raw
	}
	return nil
}

// setField assigns a typed value and forgets any raw value under that key.
func (p *Prompt) setField(f tasks.Field, v *string) {
	*p.field(f) = v
	delete(p.extra, string(f))
}

// decodeCollection reads a task document. Besides {"prompts":[...]} it
// migrates the old single-object form ({"reading":..,"audio_path":..})
// into one prompt.
func decodeCollection(t tasks.TaskID, data []byte) (Collection, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Collection{}, errMalformed
	}

	if raw, ok := top["prompts"]; ok {
		var ps []Prompt
		if err := json.Unmarshal(raw, &ps); err != nil {
			return Collection{}, errMalformed
		}
		if ps == nil {
			ps = []Prompt{}
		}
		for i := range ps {
			ps[i].task = t
		}
		return Collection{Prompts: ps}, nil
	}

	legacy := legacyPatch(top)
	if len(legacy) == 0 {
		return Collection{Prompts: []Prompt{}}, nil
	}
	kind, ok := tasks.KindOf(t)
	if !ok {
		return Collection{}, errMalformed
	}
	return Collection{Prompts: []Prompt{build(kind, 1, legacy)}}, nil
}

func legacyPatch(top map[string]json.RawMessage) Patch {
	p := Patch{}
	for _, f := range allFields {
		if v, ok := stringValue(top[string(f)]); ok {
			p[f] = &v
		}
	}
	if !p.Has(tasks.FieldAudioFile) {
		if v, ok := stringValue(top["audio_path"]); ok {
			p[tasks.FieldAudioFile] = &v
		}
	}
	return p
}

func stringValue(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
