// Command dashboard serves the link-in-bio dashboard's authentication
// surface and runs its maintenance tasks.
package main

var version = "dev"

func main() {
	Execute(version)
}
