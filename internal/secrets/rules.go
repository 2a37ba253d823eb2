package secrets

import "regexp"

// Type classifies what kind of secret a rule detects.
type Type string

const (
	TypeAPIKey           Type = "api_key"
	TypeAWSCredentials   Type = "aws_credentials"
	TypePrivateKey       Type = "private_key"
	TypePassword         Type = "password"
	TypeToken            Type = "token"
	TypeConnectionString Type = "connection_string"
	TypeSensitiveFile    Type = "sensitive_file"
)

// Rule pairs a detection pattern with the secret type it reports.
// Rules are evaluated in order; a slice of Rules is treated as immutable.
type Rule struct {
	Pattern *regexp.Regexp
	Type    Type
}

// defaultRules are regex heuristics for common secret shapes. Go's regexp
// values are safe for concurrent use and carry no match-position state, so
// the shared slice can be handed to every scan.
var defaultRules = []Rule{
	// API keys in assignments (long base64/hex-ish values)
	{regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`), TypeAPIKey},
	// Anthropic / OpenAI style keys
	{regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`), TypeAPIKey},
	{regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`), TypeAPIKey},
	// AWS access key IDs and secret access keys
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), TypeAWSCredentials},
	{regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`), TypeAWSCredentials},
	// Private key blocks
	{regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`), TypePrivateKey},
	// Passwords in assignments
	{regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[:=]\s*["']([^"']{8,})["']`), TypePassword},
	// Bearer tokens, JWTs, provider tokens
	{regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`), TypeToken},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`), TypeToken},
	{regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`), TypeToken},
	{regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`), TypeToken},
	{regexp.MustCompile(`(?i)(secret|token|credential)\s*[:=]\s*["']([^"']{8,})["']`), TypeToken},
	// Connection strings with embedded credentials
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb(\+srv)?|redis|amqp)://[^\s:@/]+:[^\s@/]+@[^\s]+`), TypeConnectionString},
}

// DefaultRules returns the built-in ordered rule set.
func DefaultRules() []Rule {
	return defaultRules
}
