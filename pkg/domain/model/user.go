package model

import "github.com/m-mizutani/contribmap/pkg/domain/types"

// UserSettingsEvent is emitted after a user saved their profile settings
type UserSettingsEvent struct {
	UserID types.UserID      `json:"user_id"`
	UE     UserExtendedField `json:"ue"`
}

// UserExtendedField holds the extended profile fields relevant to the map
type UserExtendedField struct {
	Location string `json:"user_plugin_e107projects_location"`
}

// AccessTokenEvent is emitted after an external (OAuth) login refreshed a user's token
type AccessTokenEvent struct {
	UserID      types.UserID `json:"user_id"`
	AccessToken string       `json:"access_token" masq:"secret"`
}
