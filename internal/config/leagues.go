package config

import (
	"os"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// League is one entry of the allow-list file: a JSON array of objects with
// an integer id and an optional display name.
type League struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name"`
}

var leagueValidate = validator.New(validator.WithRequiredStructEnabled())

// LoadLeagues reads the league allow-list. A missing file means the filter
// is simply not configured and every league passes; a present but broken
// file is a configuration error the user must fix.
func LoadLeagues(path string) (map[int64]struct{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, crerr.Wrapf(err, "read league file %s", path)
	}

	var leagues []League
	if err := sonic.Unmarshal(raw, &leagues); err != nil {
		return nil, crerr.Wrapf(err, "league file %s is not a JSON league array", path)
	}

	allowed := make(map[int64]struct{}, len(leagues))
	for i, league := range leagues {
		if err := leagueValidate.Struct(league); err != nil {
			return nil, crerr.Wrapf(err, "league file %s entry %d", path, i)
		}
		allowed[league.ID] = struct{}{}
	}
	return allowed, nil
}
