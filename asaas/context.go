package asaas

import "github.com/gin-gonic/gin"

const clientKey = "asaas_client"

// SetClientToContext injeta o cliente Asaas no contexto de cada request,
// no mesmo esquema do db.SetDBtoContext.
func SetClientToContext(client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientKey, client)
		c.Next()
	}
}

func ClientInstance(c *gin.Context) *Client {
	v, ok := c.Get(clientKey)
	if !ok {
		return nil
	}
	client, _ := v.(*Client)
	return client
}
