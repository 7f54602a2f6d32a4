// Command jjigae finds the words of a Korean passage worth studying before
// reading it, and adds them to the learner's collection.
package main

func main() {
	Execute()
}
