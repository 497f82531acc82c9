package cluster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// routePortOffset keeps cluster-route listeners clear of the client
// port range (client port = basePort+index).
const routePortOffset = 100

// WriteConfs generates one nats-server config file per node under dir
// and returns their paths indexed by node. The configs wire all nodes
// into a single named cluster through an explicit route mesh; a
// one-node cluster gets no cluster block at all.
func WriteConfs(dir string, servers, basePort int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create conf dir %s: %w", dir, err)
	}

	routePort := func(i int) int { return basePort + routePortOffset + i }

	paths := make([]string, 0, servers)
	for i := 0; i < servers; i++ {
		var b strings.Builder
		fmt.Fprintf(&b, "server_name: \"exercise-%d\"\n", i)

		if servers > 1 {
			fmt.Fprintf(&b, "cluster {\n")
			fmt.Fprintf(&b, "  name: \"exercise\"\n")
			fmt.Fprintf(&b, "  listen: \"127.0.0.1:%d\"\n", routePort(i))
			fmt.Fprintf(&b, "  routes: [\n")
			for j := 0; j < servers; j++ {
				if j == i {
					continue
				}
				fmt.Fprintf(&b, "    \"nats://127.0.0.1:%d\"\n", routePort(j))
			}
			fmt.Fprintf(&b, "  ]\n}\n")
		}

		path := filepath.Join(dir, fmt.Sprintf("supercluster_%d.conf", i))
		if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
			return nil, fmt.Errorf("write conf %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}
