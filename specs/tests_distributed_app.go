package specs

import "github.com/probedock/probedock-demo-go/framework"

func works(t *framework.T) {}

func DoDistributedApplicationTests(c *framework.Context) {
	c.Describe("The backend sub-system", func(c *framework.Context) {
		c.Describe("The REST API", func(c *framework.Context) {
			c.It("should work", works)
		})

		c.Describe("The business services", func(c *framework.Context) {
			c.It("should work", works)
		})

		c.Describe("The data access layer", func(c *framework.Context) {
			c.It("should work", func(t *framework.T) {
				panic("Technical error while talking to the database.")
			})
		})
	})

	c.Describe("The front-end sub-system", func(c *framework.Context) {
		c.Describe("The admin interface", func(c *framework.Context) {
			c.Describe("The monitoring pages", func(c *framework.Context) {
				c.It("should work", works)
			})
			c.Describe("The configuration pages", func(c *framework.Context) {
				c.It("should work", works)
			})
		})

		c.Describe("The end-user interface", func(c *framework.Context) {
			c.Describe("The account pages", func(c *framework.Context) {
				c.It("should work", func(t *framework.T) {
					hasWorked := false
					t.Equal(true, hasWorked)
				})
			})
			c.Describe("The fun pages", func(c *framework.Context) {
				c.It("should work", works)
			})
		})
	})
}
