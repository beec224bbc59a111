package spha

import (
	"bytes"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	aes_gcmpb "github.com/tink-crypto/tink-go/v2/proto/aes_gcm_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"

	"google.golang.org/protobuf/proto"
)

const aesGCMTypeURL = "type.googleapis.com/google.crypto.tink.AesGcmKey"

// newAESGCM wraps a derived key in a single-key Tink keyset with RAW output
// prefix, so ciphertexts are IV ‖ ciphertext ‖ tag with a 12-byte IV.
func newAESGCM(key Key) (tink.AEAD, error) {
	handle, err := newAESGCMKeyHandle(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	primitive, err := aead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("creating AES-256-GCM: %w", err)
	}

	return primitive, nil
}

func newAESGCMKeyHandle(key []byte) (*keyset.Handle, error) {
	serializedKey, err := proto.Marshal(&aes_gcmpb.AesGcmKey{
		Version:  0,
		KeyValue: key,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing AesGcmKey: %w", err)
	}

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData: &tinkpb.KeyData{
					TypeUrl:         aesGCMTypeURL,
					Value:           serializedKey,
					KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
				},
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("serializing keyset: %w", err)
	}

	return insecurecleartextkeyset.Read(keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
}
