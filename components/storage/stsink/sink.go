package stsink

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/codeking/oilfox-hub/components/status"
	"github.com/codeking/oilfox-hub/components/storage/stcore"
	"github.com/codeking/oilfox-hub/components/tank"
)

// Sink persists the device group hierarchy in database buckets.
//
// Layout:
//   - groups bucket: <parentScope>/<externalID> -> groupItem
//   - values bucket: <parentScope>/<externalID>/<fieldName> -> valueItem
//   - profiles bucket: <profileID> -> profileItem, written once on creation
type Sink struct {
	mu       sync.Mutex
	groups   stcore.DB
	values   stcore.DB
	profiles stcore.DB
}

// NewSink is a Sink initialization.
//
// Parameters:
//   - groups - bucket for device groups.
//   - values - bucket for named values.
//   - profiles - bucket for the unit profile table.
//
// Remarks:
//   - Missing unit profiles are created on initialization; existing ones are
//     reused untouched.
func NewSink(groups stcore.DB, values stcore.DB, profiles stcore.DB) (*Sink, error) {
	s := &Sink{
		groups:   groups,
		values:   values,
		profiles: profiles,
	}

	if err := s.ensureProfiles(); err != nil {
		return nil, err
	}

	return s, nil
}

type groupItem struct {
	ExternalID  string `json:"external_id"`
	Label       string `json:"label"`
	ParentScope string `json:"parent_scope"`
	CreatedAt   int64  `json:"created_at"`
}

type valueItem struct {
	Name    string  `json:"name"`
	Kind    int     `json:"kind"`
	Profile string  `json:"profile"`
	Text    string  `json:"text,omitempty"`
	Float   float64 `json:"float,omitempty"`
	Int     int64   `json:"int,omitempty"`
	Ordinal int     `json:"ordinal"`
}

type profileItem struct {
	ID     string `json:"id"`
	Kind   int    `json:"kind"`
	Digits int    `json:"digits"`
	Suffix string `json:"suffix"`
	Icon   string `json:"icon,omitempty"`
}

// ResolveOrCreateGroup returns the group for the device with externalID,
// creating it when missing.
func (s *Sink) ResolveOrCreateGroup(
	parentScope string,
	externalID string,
	label string,
) (tank.GroupHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := parentScope + "/" + externalID

	blob, err := s.groups.Read(key)
	if err == nil {
		var item groupItem
		if err := json.Unmarshal(blob.Data, &item); err != nil {
			return "", err
		}

		if item.Label == label {
			return tank.GroupHandle(key), nil
		}

		item.Label = label

		return tank.GroupHandle(key), s.writeGroup(key, item)
	}
	if !errors.Is(err, status.StatusNoData) {
		return "", err
	}

	item := groupItem{
		ExternalID:  externalID,
		Label:       label,
		ParentScope: parentScope,
		CreatedAt:   time.Now().Unix(),
	}

	return tank.GroupHandle(key), s.writeGroup(key, item)
}

// ResolveOrCreateValue creates or updates a named value under the group.
func (s *Sink) ResolveOrCreateValue(group tank.GroupHandle, field tank.Field, ordinal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := valueItem{
		Name:    field.Name,
		Kind:    int(field.Kind),
		Profile: string(field.Profile),
		Text:    field.Text,
		Float:   field.Float,
		Int:     field.Int,
		Ordinal: ordinal,
	}

	buf, err := json.Marshal(item)
	if err != nil {
		return err
	}

	return s.values.Write(string(group)+"/"+field.Name, stcore.Blob{Data: buf})
}

// GroupInfo is a description of a single persisted group.
type GroupInfo struct {
	Handle      tank.GroupHandle `json:"handle"`
	ExternalID  string           `json:"external_id"`
	Label       string           `json:"label"`
	ParentScope string           `json:"parent_scope"`
	CreatedAt   int64            `json:"created_at"`
}

// ValueInfo is a description of a single persisted named value.
type ValueInfo struct {
	Name    string `json:"name"`
	Value   any    `json:"value"`
	Profile string `json:"profile,omitempty"`
	Ordinal int    `json:"ordinal"`
}

// Groups returns descriptions for all persisted groups.
func (s *Sink) Groups() ([]GroupInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []GroupInfo

	err := s.groups.ForEach(func(key string, blob stcore.Blob) error {
		var item groupItem
		if err := json.Unmarshal(blob.Data, &item); err != nil {
			return err
		}

		items = append(items, GroupInfo{
			Handle:      tank.GroupHandle(key),
			ExternalID:  item.ExternalID,
			Label:       item.Label,
			ParentScope: item.ParentScope,
			CreatedAt:   item.CreatedAt,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Handle < items[j].Handle })

	return items, nil
}

// Values returns named values of the group, ordered by ordinal position.
func (s *Sink) Values(group tank.GroupHandle) ([]ValueInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := string(group) + "/"

	var items []ValueInfo

	err := s.values.ForEach(func(key string, blob stcore.Blob) error {
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		var item valueItem
		if err := json.Unmarshal(blob.Data, &item); err != nil {
			return err
		}

		items = append(items, ValueInfo{
			Name:    item.Name,
			Value:   itemValue(item),
			Profile: item.Profile,
			Ordinal: item.Ordinal,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Ordinal < items[j].Ordinal })

	return items, nil
}

func (s *Sink) ensureProfiles() error {
	for _, profile := range tank.Profiles() {
		key := string(profile.ID)

		if _, err := s.profiles.Read(key); err == nil {
			continue
		} else if !errors.Is(err, status.StatusNoData) {
			return err
		}

		buf, err := json.Marshal(profileItem{
			ID:     string(profile.ID),
			Kind:   int(profile.Kind),
			Digits: profile.Digits,
			Suffix: profile.Suffix,
			Icon:   profile.Icon,
		})
		if err != nil {
			return err
		}

		if err := s.profiles.Write(key, stcore.Blob{Data: buf}); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sink) writeGroup(key string, item groupItem) error {
	buf, err := json.Marshal(item)
	if err != nil {
		return err
	}

	return s.groups.Write(key, stcore.Blob{Data: buf})
}

func itemValue(item valueItem) any {
	switch tank.FieldKind(item.Kind) {
	case tank.KindFloat:
		return item.Float
	case tank.KindInt:
		return item.Int
	default:
		return item.Text
	}
}
