package db

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dasdy/pizzastore/model"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"
)

// Seed is the content of a seed file.
type Seed struct {
	Users  []model.User  `yaml:"users"`
	Stores []model.Store `yaml:"stores"`
	Items  []model.Item  `yaml:"items"`
}

func (s *Seed) Len() int {
	return len(s.Users) + len(s.Stores) + len(s.Items)
}

// LoadSeed parses a YAML seed file. Users without a role become customers.
func LoadSeed(r io.Reader) (*Seed, error) {
	var seed Seed

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &seed, nil
		}

		return nil, fmt.Errorf("could not parse seed: %w", err)
	}

	for i := range seed.Users {
		if seed.Users[i].Role == "" {
			seed.Users[i].Role = model.RoleCustomer
		}
	}

	return &seed, nil
}

// ApplySeed inserts every seed row in one transaction, reporting progress to w.
func ApplySeed(database Database, seed *Seed, w io.Writer) error {
	bar := progressbar.NewOptions(seed.Len(),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Seeding..."),
		progressbar.OptionShowCount(),
	)

	err := database.WithTx(func(e Executor) error {
		for _, u := range seed.Users {
			if _, err := e.ExecuteUpdate(
				`insert into Users(login, password, role, favoriteItems, phoneNum) values(?, ?, ?, ?, ?)`,
				u.Login, u.Password, string(u.Role), u.FavoriteItems, u.PhoneNum); err != nil {
				return fmt.Errorf("user %q: %w", u.Login, err)
			}

			advance(bar)
		}

		for _, s := range seed.Stores {
			if _, err := e.ExecuteUpdate(
				`insert into Store(storeID, address, city, state, isOpen, reviewScore) values(?, ?, ?, ?, ?, ?)`,
				s.ID, s.Address, s.City, s.State, s.IsOpen, s.ReviewScore); err != nil {
				return fmt.Errorf("store %d: %w", s.ID, err)
			}

			advance(bar)
		}

		for _, it := range seed.Items {
			if _, err := e.ExecuteUpdate(
				`insert into Items(itemName, ingredients, typeOfItem, price, description) values(?, ?, ?, ?, ?)`,
				it.Name, it.Ingredients, it.Type, it.Price, it.Description); err != nil {
				return fmt.Errorf("item %q: %w", it.Name, err)
			}

			advance(bar)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("could not apply seed: %w", err)
	}

	if err := bar.Finish(); err != nil {
		slog.ErrorContext(pkgCtx, "could not finish progress bar", "error", err)
	}

	return nil
}

func advance(bar *progressbar.ProgressBar) {
	if err := bar.Add(1); err != nil {
		slog.ErrorContext(pkgCtx, "could not update progress bar", "error", err)
	}
}
