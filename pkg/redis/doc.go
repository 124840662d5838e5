// Package redis connects to Redis with go-redis/v9 and exposes a readiness
// check. The tenant cache in pkg/tenant/rediscache is built on the client
// returned by Connect.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//	}
package redis
