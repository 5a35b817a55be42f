// Package encryption seals values at rest with an AEAD cipher. The key is
// a passphrase hashed to 32 bytes; ciphertext is base64 of nonce||sealed.
//
//	enc, err := encryption.New(passphrase, encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
//	sealed, err := enc.Encrypt(token)
package encryption
