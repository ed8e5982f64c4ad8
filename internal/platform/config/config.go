package config

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Web      WebConfig      `yaml:"web"`
}

type ServerConfig struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type DatabaseConfig struct {
	DSN  string `yaml:"dsn"`
	Seed bool   `yaml:"seed"`
}

// AuthConfig identifies the external token issuer. Issuer defaults to
// "https://<domain>/" when left empty, matching how the issuer writes
// the iss claim.
type AuthConfig struct {
	Domain   string `yaml:"domain"`
	Audience string `yaml:"audience"`
	Issuer   string `yaml:"issuer"`
}

type WebConfig struct {
	Enabled   bool   `yaml:"enabled"`
	StaticDir string `yaml:"static_dir"`
}
