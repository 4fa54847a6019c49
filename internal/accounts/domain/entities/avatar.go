package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Зарезервированные ключи дескриптора аватара.
const (
	AvatarSeedKey = "seed"
	AvatarURLKey  = "url"
)

// ErrInvalidStyleValue возвращается для значений параметров, не являющихся строкой, числом, булевым значением или массивом из них.
var ErrInvalidStyleValue = errors.New("avatar option must be a string or an array of strings")

// Avatar описывает сгенерированный аватар: seed, параметры стиля и итоговый URL.
// В JSON представлен плоским объектом {"seed": ..., "url": ..., <option>: ...}.
type Avatar struct {
	Seed    string
	Options map[string]StyleValue
	URL     string
}

// StyleValue - значение параметра стиля: строка или массив строк.
type StyleValue struct {
	Values []string
	List   bool
}

// String создает скалярное значение.
func String(v string) StyleValue {
	return StyleValue{Values: []string{v}}
}

// Strings создает значение-массив.
func Strings(v ...string) StyleValue {
	return StyleValue{Values: v, List: true}
}

// MarshalJSON реализует json.Marshaler.
func (v StyleValue) MarshalJSON() ([]byte, error) {
	if v.List {
		values := v.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	if len(v.Values) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(v.Values[0])
}

// UnmarshalJSON принимает строку, число, bool или массив из них. Числа и bool сохраняются в текстовом виде.
func (v *StyleValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decoding avatar option: %w", err)
	}

	if items, ok := raw.([]any); ok {
		values := make([]string, 0, len(items))
		for _, item := range items {
			s, err := scalarText(item)
			if err != nil {
				return err
			}
			values = append(values, s)
		}
		*v = StyleValue{Values: values, List: true}
		return nil
	}

	s, err := scalarText(raw)
	if err != nil {
		return err
	}
	*v = String(s)
	return nil
}

func scalarText(raw any) (string, error) {
	switch t := raw.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	default:
		return "", ErrInvalidStyleValue
	}
}

// MarshalJSON реализует json.Marshaler.
func (a Avatar) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(a.Options)+2)
	for k, v := range a.Options {
		flat[k] = v
	}
	flat[AvatarSeedKey] = a.Seed
	flat[AvatarURLKey] = a.URL
	return json.Marshal(flat)
}

// UnmarshalJSON реализует json.Unmarshaler.
func (a *Avatar) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("decoding avatar: %w", err)
	}

	var out Avatar
	for k, raw := range flat {
		switch k {
		case AvatarSeedKey:
			if err := json.Unmarshal(raw, &out.Seed); err != nil {
				return fmt.Errorf("decoding avatar seed: %w", err)
			}
		case AvatarURLKey:
			if err := json.Unmarshal(raw, &out.URL); err != nil {
				return fmt.Errorf("decoding avatar url: %w", err)
			}
		default:
			var v StyleValue
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("option %q: %w", k, err)
			}
			if out.Options == nil {
				out.Options = make(map[string]StyleValue)
			}
			out.Options[k] = v
		}
	}

	*a = out
	return nil
}
