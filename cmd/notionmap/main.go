// Command notionmap resolves Notion content into record maps.
package main

import "github.com/mesh-intelligence/notionmap/internal/cli"

func main() {
	cli.Execute()
}
