// Command motiondemo mounts a YAML scene of staggered groups, segmented text
// reveals and path-following borders, and runs it in a window or headless.
package main

func main() {
	Execute()
}
