package keys

import (
	"crypto/ecdsa"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/open-ballot/ballotboard/common"
	"github.com/open-ballot/ballotboard/config"
	"github.com/open-ballot/ballotboard/logging"
)

// KeystoreWallet is the wallet runtime collaborator backed by a go-ethereum
// keystore directory. An absent directory means no wallet runtime at all, a
// present but empty one means no granted identity yet.
type KeystoreWallet struct {
	ks         *keystore.KeyStore
	chainId    *big.Int
	passphrase string
}

func NewKeystoreWallet(cfg *config.ChainConfig) *KeystoreWallet {
	w := &KeystoreWallet{
		chainId:    big.NewInt(cfg.ChainId),
		passphrase: cfg.Passphrase,
	}
	if cfg.KeystoreDir == "" {
		return w
	}
	if _, err := os.Stat(cfg.KeystoreDir); err != nil {
		logging.Logger.Infof("keystore dir %s not accessible, wallet runtime absent", cfg.KeystoreDir)
		return w
	}
	w.ks = keystore.NewKeyStore(cfg.KeystoreDir, keystore.StandardScryptN, keystore.StandardScryptP)
	return w
}

func (w *KeystoreWallet) Available() bool {
	return w.ks != nil
}

// CurrentAccount discovers an already-granted identity without prompting.
func (w *KeystoreWallet) CurrentAccount() (ethcommon.Address, *bind.TransactOpts, error) {
	if w.ks == nil {
		return ethcommon.Address{}, nil, common.ErrNoWallet
	}
	accts := w.ks.Accounts()
	if len(accts) == 0 {
		return ethcommon.Address{}, nil, common.ErrNoWallet
	}
	return w.transactorFor(accts[0])
}

// RequestAccount unlocks the first account with the configured passphrase.
// An unlock failure is the keystore's denial of the identity request.
func (w *KeystoreWallet) RequestAccount() (ethcommon.Address, *bind.TransactOpts, error) {
	if w.ks == nil {
		return ethcommon.Address{}, nil, common.ErrNoWallet
	}
	accts := w.ks.Accounts()
	if len(accts) == 0 {
		return ethcommon.Address{}, nil, common.ErrNoWallet
	}
	acct := accts[0]
	if err := w.ks.Unlock(acct, w.passphrase); err != nil {
		return ethcommon.Address{}, nil, err
	}
	return w.transactorFor(acct)
}

func (w *KeystoreWallet) transactorFor(acct accounts.Account) (ethcommon.Address, *bind.TransactOpts, error) {
	opts, err := bind.NewKeyStoreTransactorWithChainID(w.ks, acct, w.chainId)
	if err != nil {
		return ethcommon.Address{}, nil, err
	}
	return acct.Address, opts, nil
}

// Watch invokes onChange whenever the keystore's account set changes.
func (w *KeystoreWallet) Watch(onChange func()) {
	if w.ks == nil {
		return
	}
	ch := make(chan accounts.WalletEvent, 16)
	w.ks.Subscribe(ch)
	go func() {
		for range ch {
			onChange()
		}
	}()
}

// PrivateKeyWallet is the single-identity wallet used when the operator
// supplies a raw private key instead of a keystore.
type PrivateKeyWallet struct {
	key     *ecdsa.PrivateKey
	address ethcommon.Address
	chainId *big.Int
}

func NewPrivateKeyWallet(privateKey string, chainId int64) (*PrivateKeyWallet, error) {
	key, err := crypto.HexToECDSA(privateKey)
	if err != nil {
		return nil, err
	}
	return &PrivateKeyWallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainId: big.NewInt(chainId),
	}, nil
}

func (w *PrivateKeyWallet) Available() bool {
	return true
}

func (w *PrivateKeyWallet) CurrentAccount() (ethcommon.Address, *bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, w.chainId)
	if err != nil {
		return ethcommon.Address{}, nil, err
	}
	return w.address, opts, nil
}

func (w *PrivateKeyWallet) RequestAccount() (ethcommon.Address, *bind.TransactOpts, error) {
	return w.CurrentAccount()
}

// Watch is a no-op: a fixed key never changes identity.
func (w *PrivateKeyWallet) Watch(onChange func()) {}
