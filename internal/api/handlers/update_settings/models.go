package update_settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnsupportedValue = errors.New("unsupported setting value")

// UpdateSettingsRequest частичное обновление настроек: ключ настройки -> JSON значение.
// Строки, числа, bool и массивы чисел (closed_weekdays) приводятся к строковому виду хранилища.
type UpdateSettingsRequest map[string]json.RawMessage

// ToPatch конвертирует запрос в патч сервиса настроек
func (r UpdateSettingsRequest) ToPatch() (map[string]string, error) {
	patch := make(map[string]string, len(r))
	for key, raw := range r {
		value, err := rawToString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, key)
		}
		patch[key] = value
	}
	return patch, nil
}

func rawToString(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", ErrUnsupportedValue
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", ErrUnsupportedValue
		}
		return s, nil
	case '[':
		var items []int
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return "", ErrUnsupportedValue
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, strconv.Itoa(item))
		}
		return strings.Join(parts, ","), nil
	case '{':
		return "", ErrUnsupportedValue
	default:
		// bool или число
		return string(trimmed), nil
	}
}
