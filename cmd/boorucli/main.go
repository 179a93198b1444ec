// boorucli is a command-line client for Gelbooru-style image boards. It
// shares the post, tag and comment plumbing with the boorubot API server.
package main

func main() {
	Execute()
}
