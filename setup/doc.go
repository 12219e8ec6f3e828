/*
Package setup runs zkgraph's trusted-setup ceremony and persists its output.

What this is, and is not
====================================================================================================
The multilinear KZG commitment scheme in package mkzg needs a structured
reference string: group elements g1^{t^e} and g2^{t^e} for a secret exponent
vector t that must never be revealed once the setup is done. In a real
deployment that secret is the output of a multi-party ceremony, like the
perpetual "powers-of-tau" ceremonies AlgoPlonk's trusted-setup package
embeds for BN254 and BLS12-381 — contributed to by many independent parties
so that no single one of them, having long since discarded their
contribution, can reconstruct t.

This package does not do that. Conf.Trusted samples t once, in this
process, from crypto/rand, and never writes it to disk; Conf.TestOnly
samples it from a fixed, well-known seed so tests are reproducible. Neither
is a ceremony, and this setup also omits the knowledge-of-exponent
companion points a real KZG deployment needs for soundness against an
adversarial committer.

What is real is the parallel generation strategy and the on-disk format: a
table with thousands of entries is generated by a worker pool of goroutines
over chunks of the exponent list (see Generate), and the result is
persisted in a format that Load reads back into an mkzg.PublicParams
without regenerating it (see Persist and Load).
*/
package setup
