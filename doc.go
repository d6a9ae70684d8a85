/* Command libb: runtime support for B

B is word addressed. Every value is a word, and an address is the index of a
word, not of a byte: the word after the one at address a is at a+1. Host
memory is byte addressed, so every time a B address is used it is multiplied
by the number of bytes in a word. This is the whole of the memory model, and
everything here follows from it:

  - A B string lives at a word address, but is a run of bytes. It ends at the
    byte 4 (written *e in B), not at a zero byte.

  - A character constant like 'hi' is a word with its characters packed in
    from the low end: 'h' in the second byte, 'i' in the lowest byte. Writing
    such a word writes its non-zero bytes, most significant first.

  - A function is also addressed by a word, so every entry point lives at a
    word aligned address.

Compiled B code calls into this runtime through a handful of entry points:

	putchar(c)      write the characters packed into c, returns c
	putnumb(n)      write n in signed decimal, returns n
	getchar()       read one character, returns -1 at end of input
	putstr(s)       write the string at s, returns 0
	exit()          end the program successfully
	char(s, n)      returns the n-th character of the string at s
	lchar(s, n, c)  sets the n-th character of the string at s, returns c

Entry points are exported under mangled symbols: the B name prefixed with
"b.", which no C identifier can start with, plus whatever the platform linker
prefixes user symbols with (an underscore on darwin and 32-bit windows). B
programs are free to name their own functions char or exit without colliding
with the host.

Nothing is checked. Addresses are not bounds checked, string indices are not
checked against the sentinel, and strings without a sentinel are scanned
until memory runs out. Memory here is sparse and zero filled; setting a
memory limit turns runaway accesses into errors rather than allocation.

The libb command can run B programs compiled to WebAssembly, which import the
entry points above from the "env" module and export b.main; call a single
entry point with literal arguments; or list the entry points.

*/
package main
