// Package mocks provides shared test doubles for the store, auth, notify and
// service interfaces.
//
// Two styles are used. Store and service mocks embed testify's mock.Mock and
// are driven with On(...).Return(...). Small collaborators such as the JWT
// service and the password hasher use function fields with static defaults:
//
//	tokens := &mocks.MockJWTService{Token: "signed-token"}
//	users := new(mocks.MockUserStore)
//	users.On("GetByEmail", mock.Anything, "a@b.co").Return(user, nil)
package mocks
