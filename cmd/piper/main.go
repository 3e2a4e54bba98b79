// Command piper compresses, decompresses and compares files with the piper codecs.
//
// Usage:
//
//	piper -i input.txt -a lz77                    # writes input.txt.lz77
//	piper -i input.txt.lz77 -m decompress -a lz77 # writes input.txt
//	piper -i input.txt -a huffman -frame          # framed output with checksum
//	piper -i input.txt.huffman -m decompress -frame
//	piper -i input.txt -m compare                 # stats for every codec
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
