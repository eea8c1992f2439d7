package specs

import "github.com/probedock/probedock-demo-go/framework"

// RunTestSuite runs every demo suite with the given runner.
func RunTestSuite(runner *framework.Runner) framework.Results {
	return runner.Run(func(c *framework.Context) {
		c.Describe("app", DoAppTests)
		c.Describe("A distributed application", DoDistributedApplicationTests)
	})
}
