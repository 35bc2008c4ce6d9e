// Package seed installs languages, sections, content types, users, roles and
// content described in a YAML file. Applying a file twice is a no-op: items
// that already exist are left untouched.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"gopkg.in/yaml.v3"
)

//go:embed install.yaml
var installYAML []byte

// File is a seed definition.
type File struct {
	Languages         []Language    `yaml:"languages"`
	Sections          []Section     `yaml:"sections"`
	ContentTypeGroups []string      `yaml:"content_type_groups"`
	ContentTypes      []ContentType `yaml:"content_types"`
	UserGroups        []UserGroup   `yaml:"user_groups"`
	Users             []User        `yaml:"users"`
	Roles             []Role        `yaml:"roles"`
	Content           []Content     `yaml:"content"`
}

type Language struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
}

type Section struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
}

type ContentType struct {
	Identifier      string              `yaml:"identifier"`
	Group           string              `yaml:"group"`
	MainLanguage    string              `yaml:"main_language"`
	Names           map[string]string   `yaml:"names"`
	NameSchema      string              `yaml:"name_schema"`
	URLAliasSchema  string              `yaml:"url_alias_schema"`
	Container       bool                `yaml:"container"`
	AlwaysAvailable bool                `yaml:"always_available"`
	SortField       simplecms.SortField `yaml:"sort_field"`
	SortOrder       simplecms.SortOrder `yaml:"sort_order"`
	Fields          []Field             `yaml:"fields"`
}

type Field struct {
	Identifier   string            `yaml:"identifier"`
	Type         string            `yaml:"type"`
	Names        map[string]string `yaml:"names"`
	Required     bool              `yaml:"required"`
	Translatable bool              `yaml:"translatable"`
	Searchable   bool              `yaml:"searchable"`
	Default      any               `yaml:"default"`
	Settings     map[string]any    `yaml:"settings"`
}

// UserGroup is a group with its subgroups. Groups are matched by name below
// their parent.
type UserGroup struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	RemoteID    string      `yaml:"remote_id"`
	Children    []UserGroup `yaml:"children"`
}

type User struct {
	Login    string `yaml:"login"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
	// Groups are slash separated group paths such as "Members/Editors".
	Groups []string `yaml:"groups"`
}

type Role struct {
	Identifier string   `yaml:"identifier"`
	Policies   []Policy `yaml:"policies"`
	Groups     []string `yaml:"assign_groups"`
	Users      []string `yaml:"assign_users"`
}

type Policy struct {
	Module      string       `yaml:"module"`
	Function    string       `yaml:"function"`
	Limitations []Limitation `yaml:"limitations"`
}

// Limitation values of Section and Class limitations may name sections
// and content types by identifier.
type Limitation struct {
	Identifier string   `yaml:"identifier"`
	Values     []string `yaml:"values"`
}

type Content struct {
	Type     string `yaml:"type"`
	RemoteID string `yaml:"remote_id"`
	Language string `yaml:"language"`
	Section  string `yaml:"section"`
	// Parent is the remote ID of the parent content. The root location is
	// used when empty.
	Parent string         `yaml:"parent"`
	Fields map[string]any `yaml:"fields"`
}

// Parse decodes a seed file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &f, nil
}

// LoadFile parses the seed file at path.
func LoadFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Install returns the built in install definition: the standard sections,
// folder and article types, the administrator and anonymous users and
// their roles.
func Install() (*File, error) {
	return Parse(bytes.NewReader(installYAML))
}
