package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const roleRoutesFileEnvVar = "ROLE_ROUTES_FILE"

type AccessConfig interface {
	GetRoleRoutes() map[string][]string
	GetPublicRoutes() []string
}

type Access struct {
	roleRoutes   map[string][]string
	publicRoutes []string
}

var _ AccessConfig = Access{}

// accessFile is the YAML layout of ROLE_ROUTES_FILE:
//
//	public: ["/login"]
//	roles:
//	  admin: ["/", "/services/*"]
type accessFile struct {
	Public []string            `yaml:"public"`
	Roles  map[string][]string `yaml:"roles"`
}

// DefaultRoleRoutes is the built-in role to path policy.
func DefaultRoleRoutes() map[string][]string {
	return map[string][]string{
		"admin":   {"/", "/services/*", "/bookings/*", "/captains/*", "/customers/*", "/settings/*", "/unauthorized"},
		"manager": {"/", "/services/*", "/bookings/*", "/captains/*", "/customers/*", "/unauthorized"},
		"captain": {"/pos/*", "/table", "/unauthorized"},
	}
}

// DefaultPublicRoutes are reachable without a session.
func DefaultPublicRoutes() []string {
	return []string{"/login"}
}

func loadAccess() (Access, error) {
	path := GetEnv(roleRoutesFileEnvVar, "")
	if path == "" {
		return Access{roleRoutes: DefaultRoleRoutes(), publicRoutes: DefaultPublicRoutes()}, nil
	}
	return LoadAccessFile(path)
}

// LoadAccessFile reads a role route table from YAML. Missing sections fall
// back to the defaults.
func LoadAccessFile(path string) (Access, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Access{}, fmt.Errorf("[Config Access] read %s: %w", path, err)
	}

	var file accessFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Access{}, fmt.Errorf("[Config Access] parse %s: %w", path, err)
	}

	access := Access{roleRoutes: file.Roles, publicRoutes: file.Public}
	if len(access.roleRoutes) == 0 {
		access.roleRoutes = DefaultRoleRoutes()
	}
	if len(access.publicRoutes) == 0 {
		access.publicRoutes = DefaultPublicRoutes()
	}
	return access, nil
}

func (a Access) GetRoleRoutes() map[string][]string {
	return a.roleRoutes
}

func (a Access) GetPublicRoutes() []string {
	return a.publicRoutes
}
