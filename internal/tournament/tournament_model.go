package tournament

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tourneo/tourneo/internal/models"
)

const (
	EntryTypeIndividual = "INDIVIDUAL"
	EntryTypeTeam       = "TEAM"
)

// Tournament belongs to one organization. Slug is unique within the
// organization, not globally. CreatedBy keeps manage rights on the tournament
// regardless of later membership role changes.
type Tournament struct {
	gorm.Model
	OrgID       uint           `gorm:"not null;uniqueIndex:idx_org_slug" json:"org_id"`
	Slug        string         `gorm:"not null;uniqueIndex:idx_org_slug" json:"slug"`
	GameID      uint           `gorm:"not null" json:"game_id"`
	CreatedBy   uint           `gorm:"not null;index" json:"created_by"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description,omitempty"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	Settings    models.JSONMap `gorm:"type:json" json:"settings,omitempty"`
	Categories  []Category     `gorm:"foreignKey:TournamentID" json:"categories,omitempty"`
}

// Category is a competitive bracket within a tournament. Key is unique within
// the tournament. TEAM-typed categories must carry a team size in Settings.
type Category struct {
	gorm.Model
	TournamentID uint             `gorm:"not null;uniqueIndex:idx_tournament_key" json:"tournament_id"`
	Key          string           `gorm:"not null;uniqueIndex:idx_tournament_key" json:"key"`
	Name         string           `gorm:"not null" json:"name"`
	EntryType    string           `gorm:"not null;default:'INDIVIDUAL'" json:"entry_type"`
	EntryLimit   *int             `json:"entry_limit,omitempty"`
	Settings     CategorySettings `gorm:"type:json" json:"settings"`
}

// CategorySettings is the category settings blob. TeamSize is the one key the
// lifecycle rules depend on (capacity including captain); everything else
// rides along in Extra and round-trips untouched. On the wire and in the
// store the two are flattened into a single JSON object.
type CategorySettings struct {
	TeamSize *int
	Extra    map[string]interface{}
}

// Merge overlays incoming onto s key by key. The merge is shallow; nested
// objects are replaced, not merged. TeamSize from incoming wins when set.
func (s CategorySettings) Merge(incoming CategorySettings) CategorySettings {
	merged := CategorySettings{TeamSize: s.TeamSize}
	if len(s.Extra) > 0 || len(incoming.Extra) > 0 {
		merged.Extra = make(map[string]interface{}, len(s.Extra)+len(incoming.Extra))
		for k, v := range s.Extra {
			merged.Extra[k] = v
		}
		for k, v := range incoming.Extra {
			merged.Extra[k] = v
		}
	}
	if incoming.TeamSize != nil {
		merged.TeamSize = incoming.TeamSize
	}
	return merged
}

func (s CategorySettings) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Extra)+1)
	for k, v := range s.Extra {
		out[k] = v
	}
	if s.TeamSize != nil {
		out["teamSize"] = *s.TeamSize
	}
	return json.Marshal(out)
}

func (s *CategorySettings) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.TeamSize = nil
	s.Extra = nil
	if v, ok := raw["teamSize"]; ok {
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("teamSize must be a number, got %T", v)
		}
		size := int(f)
		s.TeamSize = &size
		delete(raw, "teamSize")
	}
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}

// Value implements driver.Valuer for gorm.
func (s CategorySettings) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for gorm.
func (s *CategorySettings) Scan(value interface{}) error {
	if value == nil {
		*s = CategorySettings{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for CategorySettings")
	}
}
