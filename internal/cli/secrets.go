package cli

import (
	"github.com/zalando/go-keyring"
)

// SecretStore keeps import passwords outside the address book file.
type SecretStore interface {
	Get(user string) (string, error)
	Set(user, password string) error
}

// KeyringSecrets stores passwords in the OS keyring under Service.
type KeyringSecrets struct {
	Service string
}

func (k KeyringSecrets) Get(user string) (string, error) {
	return keyring.Get(k.Service, user)
}

func (k KeyringSecrets) Set(user, password string) error {
	return keyring.Set(k.Service, user, password)
}
