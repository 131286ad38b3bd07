// internal/domain/session/entity.go
package session

// StoreInfo is the persisted store selection. The JSON shape matches what
// the web client kept under zakaz_store_info.
type StoreInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// UserInfo is the saved checkout contact info, used as form defaults on the
// next checkout. Last write wins.
type UserInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Location string `json:"location"`
}

// AccountInfo is the saved account profile. Same shape as UserInfo but a
// separate record: editing the profile does not touch checkout defaults.
type AccountInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Location string `json:"location"`
}
