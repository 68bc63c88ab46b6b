// Package deskclient talks to the JSON API of a running order desk.
//
// It is used by the CLI to check desks found on the network and to fetch a
// desk's catalog. Requests are retried with exponential backoff when the
// failure is transient (timeouts, refused connections, 5xx); the catalog is
// cached for a short time.
//
//	c := deskclient.NewClient("http://192.168.1.20:8080")
//	health, err := c.Health(ctx)
//	if deskclient.IsNetworkError(err) {
//	    // desk is down or unreachable
//	}
package deskclient
