package utils

import (
	"fmt"
	"os"
)

// Environment variable names consumed by the Lambda handlers. Values are
// deployment supplied; each handler validates the subset it needs before
// touching any collaborator.
const (
	EnvUserPoolId       = "USER_POOL_ID"
	EnvUserPoolClientId = "USER_POOL_CLIENT_ID"
	EnvUserTable        = "USER_TABLE"
	EnvPostTable        = "POST_TABLE"
	EnvAvatarBucket     = "AVATAR_BUCKET"
	EnvPostBucket       = "POST_BUCKET"
	EnvFeedPageSize     = "FEED_PAGE_SIZE"
	EnvSearchPageSize   = "SEARCH_PAGE_SIZE"
)

// ValidateEnvs resolves the given environment variables, returning them by
// name. A missing or empty value short-circuits with a config_missing error,
// which handlers surface as a 500 before calling any collaborator.
func ValidateEnvs(names ...string) (map[string]string, error) {
	envs := make(map[string]string, len(names))
	for _, name := range names {
		value := os.Getenv(name)
		if value == "" {
			return nil, NewApiError(ErrorKindConfigMissing,
				fmt.Sprintf("ENV %s não encontrada.", name))
		}
		envs[name] = value
	}
	return envs, nil
}
