package gamedata

import (
	"encoding/json"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Load reads and unmarshals a JSON file from the given filesystem.
func Load[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("failed to read content file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// LoadYAML reads and unmarshals a YAML file from the given filesystem.
func LoadYAML[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("failed to read content file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse YAML from %s: %w", filename, err)
	}

	return result, nil
}

// LoadSpells loads spell definitions from spells.json.
func LoadSpells(fsys fs.FS) ([]SpellDef, error) {
	file, err := Load[SpellsFile](fsys, "spells.json")
	if err != nil {
		return nil, err
	}
	return file.Spells, nil
}

// LoadItems loads item definitions from items.json.
func LoadItems(fsys fs.FS) ([]ItemDef, error) {
	file, err := Load[ItemsFile](fsys, "items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}

// LoadEnemies loads enemy templates from enemies.json.
func LoadEnemies(fsys fs.FS) ([]EnemyDef, error) {
	file, err := Load[EnemiesFile](fsys, "enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}

// LoadBalance loads the tuning file balance.yaml.
func LoadBalance(fsys fs.FS) (*Balance, error) {
	balance, err := LoadYAML[Balance](fsys, "balance.yaml")
	if err != nil {
		return nil, err
	}
	return &balance, nil
}
