package normalize

import (
	"encoding/json"
	"errors"

	"tazkara/internal/models"
)

type rawUser struct {
	ID            models.FlexibleNumber `json:"id"`
	Name          string                `json:"name"`
	Phone         string                `json:"phone"`
	Token         string                `json:"token"`
	AccessToken   string                `json:"access_token"`
	WalletBalance models.FlexibleNumber `json:"wallet_balance"`
}

// LoginUser enforces the strict login contract: the response must carry a
// token and a user object with a numeric id and a non-empty name. Anything
// else is an invalid response, not a rejection.
func LoginUser(data []byte) (models.User, error) {
	var resp struct {
		Token string   `json:"token"`
		User  *rawUser `json:"user"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.User{}, err
	}
	if resp.Token == "" || resp.User == nil {
		return models.User{}, errors.New("response is missing token or user")
	}

	id := int64(resp.User.ID.Value)
	if !resp.User.ID.Valid || id <= 0 || resp.User.Name == "" {
		return models.User{}, errors.New("user object is missing numeric id or name")
	}

	return models.User{
		ID:    id,
		Name:  resp.User.Name,
		Phone: resp.User.Phone,
		Token: resp.Token,
	}, nil
}

// RegisterUser resolves the three nestings a register response is known to
// arrive in — {"user": {...}}, {"data": {...}}, or the user fields flat at
// the top level — using the first candidate that carries a non-empty name
// and phone. Name and phone fall back to the submitted values, the wallet
// balance defaults to zero.
func RegisterUser(data []byte, submittedName, submittedPhone string) (models.User, error) {
	var envelope struct {
		rawUser
		User        *rawUser `json:"user"`
		Data        *rawUser `json:"data"`
		Token       string   `json:"token"`
		AccessToken string   `json:"access_token"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return models.User{}, err
	}

	var picked *rawUser
	for _, candidate := range []*rawUser{envelope.User, envelope.Data, &envelope.rawUser} {
		if candidate != nil && candidate.Name != "" && candidate.Phone != "" {
			picked = candidate
			break
		}
	}
	if picked == nil {
		// The upstream echoed nothing usable; the submitted identity still
		// has to satisfy the schema below.
		picked = &envelope.rawUser
	}

	user := models.User{
		ID:            int64(picked.ID.Value),
		Name:          firstNonEmpty(picked.Name, submittedName),
		Phone:         firstNonEmpty(picked.Phone, submittedPhone),
		Token:         firstNonEmpty(picked.Token, picked.AccessToken, envelope.Token, envelope.AccessToken),
		WalletBalance: picked.WalletBalance.Float(),
		BalanceKnown:  picked.WalletBalance.Valid,
	}
	if !picked.ID.Valid || user.ID <= 0 || user.Name == "" || user.Phone == "" {
		return models.User{}, errors.New("response carries no usable user identity")
	}
	return user, nil
}
