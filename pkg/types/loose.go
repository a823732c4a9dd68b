package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LooseInt принимает число, число в строке, "" и null. Пустые значения - 0.
// CRM отдаёт идентификаторы обоими способами, иногда дробным числом.
type LooseInt int

func (v *LooseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*v = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("ожидалось число, получено %q", s)
		}
		*v = LooseInt(n)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return err
		}
		i = int64(f)
	}
	*v = LooseInt(i)
	return nil
}

func (v LooseInt) Int() int { return int(v) }

// LooseString принимает строку и число (координаты приходят и так, и так).
type LooseString string

func (v *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = LooseString(s)
		return nil
	}
	*v = LooseString(string(data))
	return nil
}
