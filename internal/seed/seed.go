// Package seed loads initial users from a YAML document.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/polkiloo/usersvc/internal/domain/model"
	"github.com/polkiloo/usersvc/internal/usecase"
)

type document struct {
	Users []entry `yaml:"users"`
}

type entry struct {
	ID       string  `yaml:"id" json:"-"`
	Login    *string `yaml:"login" json:"login,omitempty"`
	Age      *int    `yaml:"age" json:"age,omitempty"`
	Password *string `yaml:"password" json:"password,omitempty"`
}

// Load reads and validates the seed file at path.
func Load(path string) ([]model.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Every entry must pass the create validation;
// the first invalid entry aborts parsing.
func Parse(data []byte) ([]model.User, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	users := make([]model.User, 0, len(doc.Users))
	for i, e := range doc.Users {
		payload, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("seed user %d: %w", i, err)
		}
		user, err := usecase.ValidateUser(payload)
		if err != nil {
			return nil, fmt.Errorf("seed user %d: %w", i, err)
		}
		user.ID = e.ID
		users = append(users, *user)
	}
	return users, nil
}
