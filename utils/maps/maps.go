package maps

import "github.com/mitchellh/mapstructure"

// Map2Struct Decode takes an input structure and uses reflection to translate it to
// the output structure. output must be a pointer to a map or struct.
func Map2Struct(input interface{}, output interface{}) error {
	return mapstructure.Decode(input, output)
}

// Map2StructStrict works like Map2Struct but rejects keys that have no
// matching field, and accepts a scalar where a slice is expected.
// Keys are matched with the `mapstructure` struct tag.
func Map2StructStrict(input interface{}, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Struct2Map translates a struct into a map keyed by its `mapstructure` tags.
// Fields tagged omitempty are left out when zero.
func Struct2Map(input interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if err := mapstructure.Decode(input, &out); err != nil {
		return nil, err
	}
	return out, nil
}
