package page

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseList decodes a list from YAML or JSON.
func ParseList(data []byte) (List, error) {
	if strings.TrimSpace(string(data)) == "" {
		return List{}, errors.New("page: empty list document")
	}
	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		return List{}, fmt.Errorf("page: decode list: %w", err)
	}
	seen := make(map[string]struct{}, len(list.Items))
	for i, item := range list.Items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			return List{}, fmt.Errorf("page: item %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}
		list.Items[i].ID = id
	}
	return list, nil
}

func LoadList(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return List{}, fmt.Errorf("page: read list %q: %w", path, err)
	}
	list, err := ParseList(data)
	if err != nil {
		return List{}, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}
