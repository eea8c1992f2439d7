package specs

import (
	"reflect"
	"time"

	"github.com/probedock/probedock-demo-go/framework"
	"github.com/probedock/probedock-demo-go/sampleapp"
)

func DoAppTests(c *framework.Context) {
	c.Describe("doSomething", func(c *framework.Context) {
		c.It("should return a string", func(t *framework.T) {
			result := sampleapp.DoSomething()
			t.Equal(reflect.String, reflect.TypeOf(result).Kind())
		})

		c.It("should return 'sweet'", func(t *framework.T) {
			t.Equal("sweet", sampleapp.DoSomething())
		})
	})

	c.Describe("doSomethingAsynchronously", func(c *framework.Context) {
		c.It("should return 'cool'", func(t *framework.T) {
			t.SetTimeout(5 * time.Second)
			results := make(chan string, 1)
			sampleapp.DoSomethingAsynchronously(func(result string) {
				results <- result
			})
			t.Equal("cool", <-results)
		})
	})
}
