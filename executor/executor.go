package executor

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/open-ballot/ballotboard/common"
	"github.com/open-ballot/ballotboard/config"
	"github.com/open-ballot/ballotboard/logging"
	"github.com/open-ballot/ballotboard/util"
)

// PollRecord is one poll slot as the ledger encodes it, before client-side
// normalization.
type PollRecord struct {
	Question   string
	Options    []string
	VoteCounts []*big.Int
	TotalVotes *big.Int
	Creator    ethcommon.Address
}

// Valid reports whether the slot holds a materialized record. Slots with an
// empty question or the null-identity creator are placeholders and must be
// excluded from every view.
func (r *PollRecord) Valid() bool {
	return r != nil && r.Question != "" && r.Creator != (ethcommon.Address{})
}

// Pending is a submitted mutation awaiting finalization. Wait blocks until
// the ledger acknowledges the mutation as durable or rejects it.
type Pending interface {
	Wait() error
}

type pendingTx struct {
	client *ethclient.Client
	tx     *ethtypes.Transaction
}

func (p *pendingTx) Wait() error {
	receipt, err := bind.WaitMined(context.Background(), p.client, p.tx)
	if err != nil {
		logging.Logger.Errorf("executor failed to await tx %s, err=%s", p.tx.Hash().Hex(), err.Error())
		return err
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return common.ErrTxReverted
	}
	return nil
}

type Executor struct {
	config      *config.Config
	client      *ethclient.Client
	contract    *bind.BoundContract
	contractAbi abi.ABI

	mtx     sync.RWMutex
	signer  *bind.TransactOpts
	address ethcommon.Address
}

func NewExecutor(cfg *config.Config) *Executor {
	client, err := dialFirstAvailable(cfg.ChainConfig.RPCAddrs)
	if err != nil {
		logging.Logger.Errorf("executor failed to dial any rpc endpoint, err=%s", err.Error())
		panic(err)
	}

	contractAbi, err := abi.JSON(strings.NewReader(ballotABI))
	if err != nil {
		panic(err)
	}

	contractAddr := ethcommon.HexToAddress(cfg.ChainConfig.ContractAddress)
	contract := bind.NewBoundContract(contractAddr, contractAbi, client, client, client)

	return &Executor{
		config:      cfg,
		client:      client,
		contract:    contract,
		contractAbi: contractAbi,
	}
}

func dialFirstAvailable(addrs []string) (*ethclient.Client, error) {
	var client *ethclient.Client
	err := retry.Do(func() error {
		var lastErr error
		for _, addr := range addrs {
			c, dialErr := ethclient.Dial(addr)
			if dialErr != nil {
				lastErr = dialErr
				continue
			}
			client = c
			return nil
		}
		return lastErr
	}, common.RetryAttempts, common.RetryDelay, common.RetryErr,
		retry.OnRetry(func(n uint, err error) {
			logging.Logger.Infof("failed to dial rpc endpoints, attempt: %d times, max_attempts: %d", n+1, common.RetryAttemptNum)
		}))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// SetSigner binds mutations to the given identity. Passing a nil signer
// drops the binding.
func (e *Executor) SetSigner(addr ethcommon.Address, opts *bind.TransactOpts) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.address = addr
	e.signer = opts
	if e.signer != nil && e.config.ChainConfig.GasLimit > 0 {
		e.signer.GasLimit = e.config.ChainConfig.GasLimit
	}
}

func (e *Executor) HasSigner() bool {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.signer != nil
}

func (e *Executor) Address() string {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	if e.signer == nil {
		return ""
	}
	return e.address.Hex()
}

func (e *Executor) PollCount() (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), RPCTimeout)
	defer cancel()

	var out []interface{}
	err := e.contract.Call(&bind.CallOpts{Context: ctx}, &out, MethodPollCount)
	if err != nil {
		logging.Logger.Errorf("executor failed to query poll count, err=%s", err.Error())
		return 0, err
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("pollCount returned %d values", len(out))
	}
	count, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("pollCount returned unexpected type %T", out[0])
	}
	return util.BigToUint64(count)
}

func (e *Executor) GetPoll(id uint64) (*PollRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), RPCTimeout)
	defer cancel()

	var out []interface{}
	err := e.contract.Call(&bind.CallOpts{Context: ctx}, &out, MethodGetPoll, new(big.Int).SetUint64(id))
	if err != nil {
		return nil, errors.Wrapf(err, "query poll %d", id)
	}
	if len(out) != 5 {
		return nil, fmt.Errorf("getPoll %d returned %d values", id, len(out))
	}
	question, ok0 := out[0].(string)
	options, ok1 := out[1].([]string)
	voteCounts, ok2 := out[2].([]*big.Int)
	totalVotes, ok3 := out[3].(*big.Int)
	creator, ok4 := out[4].(ethcommon.Address)
	if !ok0 || !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("getPoll %d returned malformed record", id)
	}
	return &PollRecord{
		Question:   question,
		Options:    options,
		VoteCounts: voteCounts,
		TotalVotes: totalVotes,
		Creator:    creator,
	}, nil
}

// GetLeaderboard returns the ledger-ranked poll identifiers. The ranking
// algorithm and tie-break policy are the ledger's, this client treats the
// sequence as an opaque total order.
func (e *Executor) GetLeaderboard() ([]uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), RPCTimeout)
	defer cancel()

	var out []interface{}
	err := e.contract.Call(&bind.CallOpts{Context: ctx}, &out, MethodGetLeaderboard)
	if err != nil {
		logging.Logger.Errorf("executor failed to query leaderboard, err=%s", err.Error())
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("getLeaderboard returned %d values", len(out))
	}
	ids, ok := out[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("getLeaderboard returned unexpected type %T", out[0])
	}
	return util.BigsToUint64s(ids)
}

func (e *Executor) SubmitVote(pollId, optionIndex uint64) (Pending, error) {
	pending, err := e.transact(MethodVote, new(big.Int).SetUint64(pollId), new(big.Int).SetUint64(optionIndex))
	if err != nil {
		logging.Logger.Errorf("executor failed to submit vote for poll %d option %d, err=%s", pollId, optionIndex, err.Error())
		return nil, err
	}
	return pending, nil
}

func (e *Executor) SubmitCreatePoll(question string, options []string) (Pending, error) {
	pending, err := e.transact(MethodCreatePoll, question, options)
	if err != nil {
		logging.Logger.Errorf("executor failed to submit poll creation, err=%s", err.Error())
		return nil, err
	}
	return pending, nil
}

func (e *Executor) SubmitReset() (Pending, error) {
	pending, err := e.transact(MethodResetAllPolls)
	if err != nil {
		logging.Logger.Errorf("executor failed to submit reset, err=%s", err.Error())
		return nil, err
	}
	return pending, nil
}

func (e *Executor) transact(method string, params ...interface{}) (Pending, error) {
	e.mtx.RLock()
	opts := e.signer
	e.mtx.RUnlock()
	if opts == nil {
		return nil, common.ErrNotInitialized
	}

	tx, err := e.contract.Transact(opts, method, params...)
	if err != nil {
		// The node surfaces contract rejections as revert reasons during
		// gas estimation, before anything is submitted.
		if strings.Contains(err.Error(), AlreadyVotedReason) {
			return nil, common.ErrAlreadyVoted
		}
		return nil, err
	}
	return &pendingTx{client: e.client, tx: tx}, nil
}
