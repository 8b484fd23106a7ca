package submit

import (
	"fmt"

	"estate_listing_v1/internal/model"
)

// OptionSet 基于固定目录的多选集合，勾选/取消即加入/移出集合
type OptionSet struct {
	catalog  model.Catalog
	selected map[string]struct{}
}

// NewOptionSet 以目录和已选值构造集合，已选值必须都在目录内
func NewOptionSet(catalog model.Catalog, selected ...string) (*OptionSet, error) {
	s := &OptionSet{catalog: catalog, selected: make(map[string]struct{}, len(selected))}
	for _, id := range selected {
		if err := s.Add(id); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *OptionSet) check(id string) error {
	if !s.catalog.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, id)
	}
	return nil
}

func (s *OptionSet) Add(id string) error {
	if err := s.check(id); err != nil {
		return err
	}
	s.selected[id] = struct{}{}
	return nil
}

func (s *OptionSet) Remove(id string) error {
	if err := s.check(id); err != nil {
		return err
	}
	delete(s.selected, id)
	return nil
}

// Toggle 切换选中状态，返回切换后是否选中
func (s *OptionSet) Toggle(id string) (bool, error) {
	if err := s.check(id); err != nil {
		return false, err
	}
	if s.Has(id) {
		delete(s.selected, id)
		return false, nil
	}
	s.selected[id] = struct{}{}
	return true, nil
}

func (s *OptionSet) Has(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Values 已选值，按目录顺序输出
func (s *OptionSet) Values() []string {
	out := make([]string, 0, len(s.selected))
	for _, id := range s.catalog.IDs() {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
