// Large Macro Input Generator
//
// This tool generates a large macro input file for performance testing
// and profiling. It mixes definitions, invocations, quoted literals,
// comments, conditionals, and diversions to stress-test the lexer and
// expansion engine.
//
// Usage:
//
//	go run main.go > large.m4
//	go run main.go 20000000 > large.m4  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	macroNames = []string{
		"author", "project", "version", "license", "homepage",
		"copyright", "hostname", "region", "env", "tier",
		"greeting", "signature", "banner", "footer", "disclaimer",
		"wrap", "pair", "join2", "join3", "label",
	}

	words = []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilo", "lima",
		"release", "staging", "production", "canary", "preview",
	}

	bodies = []string{
		"$1", "$1 $2", "[$1]", "$0: $1", "$1-$2-$3",
		"prefix $1 suffix", "`literal'", "$1$1",
	}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	writeHeader()

	bytesWritten := 0
	invocationCount := 0

	for bytesWritten < targetSize {
		switch rand.Intn(10) {
		case 0: // 10% - New definition
			output := generateDefinition()
			fmt.Print(output)
			bytesWritten += len(output)

		case 1, 2, 3: // 30% - Invocation with arguments
			output := generateInvocation()
			fmt.Print(output)
			bytesWritten += len(output)
			invocationCount++

		case 4, 5: // 20% - Quoted literal text
			output := generateQuotedText()
			fmt.Print(output)
			bytesWritten += len(output)

		case 6: // 10% - Comment line
			output := generateComment()
			fmt.Print(output)
			bytesWritten += len(output)

		case 7: // 10% - Conditional
			output := generateConditional()
			fmt.Print(output)
			bytesWritten += len(output)
			invocationCount++

		case 8: // 10% - Diversion round-trip
			output := generateDiversion()
			fmt.Print(output)
			bytesWritten += len(output)

		case 9: // 10% - Plain prose
			output := generateProse()
			fmt.Print(output)
			bytesWritten += len(output)
		}
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d invocations\n", bytesWritten, invocationCount)
}

func writeHeader() {
	fmt.Println("# Large macro input for performance testing")
	fmt.Println("dnl this line never reaches the output")
	fmt.Println()

	// Seed a stable set of macros so early invocations always resolve.
	for _, name := range macroNames {
		fmt.Printf("define(%s, `%s')dnl\n", name, bodies[rand.Intn(len(bodies))])
	}
	fmt.Println()
}

func generateDefinition() string {
	name := macroNames[rand.Intn(len(macroNames))]
	body := bodies[rand.Intn(len(bodies))]
	return fmt.Sprintf("define(%s, `%s')dnl\n", name, body)
}

func generateInvocation() string {
	name := macroNames[rand.Intn(len(macroNames))]
	a := words[rand.Intn(len(words))]
	b := words[rand.Intn(len(words))]
	switch rand.Intn(3) {
	case 0:
		return fmt.Sprintf("%s(`%s')\n", name, a)
	case 1:
		return fmt.Sprintf("%s(`%s', `%s')\n", name, a, b)
	default:
		return fmt.Sprintf("%s(`%s', `%s', `%d')\n", name, a, b, rand.Intn(1000))
	}
}

func generateQuotedText() string {
	a := words[rand.Intn(len(words))]
	b := words[rand.Intn(len(words))]
	return fmt.Sprintf("`%s %s (unexpanded, commas, and parens stay put)'\n", a, b)
}

func generateComment() string {
	return fmt.Sprintf("# note %d: define(ignored, here) is inert in comments\n", rand.Intn(10000))
}

func generateConditional() string {
	name := macroNames[rand.Intn(len(macroNames))]
	a := words[rand.Intn(len(words))]
	b := words[rand.Intn(len(words))]
	if rand.Intn(2) == 0 {
		return fmt.Sprintf("ifdef(%s, `%s is set', `%s is unset')\n", name, name, name)
	}
	return fmt.Sprintf("ifelse(`%s', `%s', `same', `different')\n", a, b)
}

func generateDiversion() string {
	n := rand.Intn(3) + 1
	a := words[rand.Intn(len(words))]
	return fmt.Sprintf("divert(%d)`deferred %s'divert(0)dnl\n", n, a)
}

func generateProse() string {
	a := words[rand.Intn(len(words))]
	b := words[rand.Intn(len(words))]
	c := words[rand.Intn(len(words))]
	return fmt.Sprintf("the %s %s ran past the %s today\n", a, b, c)
}
