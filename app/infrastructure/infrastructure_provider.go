package infrastructure

import (
	"github.com/google/wire"
	"pantrypal.app/pantry-api-gateway/app/domain/common"
	"pantrypal.app/pantry-api-gateway/app/domain/fatsecret"
	"pantrypal.app/pantry-api-gateway/app/domain/identity"
	"pantrypal.app/pantry-api-gateway/app/domain/notification"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/apns"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/cache"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/firebase"
	"pantrypal.app/pantry-api-gateway/app/utils/emailservice"
	fatsecretclient "pantrypal.app/pantry-api-gateway/app/utils/httpclients/fatsecret"
)

var InfrastructureProvider = wire.NewSet(
	cache.NewRedisCacheService,
	firebase.NewTokenVerifier,
	apns.NewClient,
	fatsecretclient.NewClient,
	emailservice.NewMailer,
	wire.Bind(new(identity.FastStore), new(*cache.RedisCacheService)),
	wire.Bind(new(fatsecret.TokenStore), new(*cache.RedisCacheService)),
	wire.Bind(new(common.Locker), new(*cache.RedisCacheService)),
	wire.Bind(new(identity.Verifier), new(*firebase.TokenVerifier)),
	wire.Bind(new(fatsecret.Client), new(*fatsecretclient.Client)),
	wire.Bind(new(notification.Pusher), new(*apns.Client)),
	wire.Bind(new(notification.Mailer), new(*emailservice.Mailer)),
)
