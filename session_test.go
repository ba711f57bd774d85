package chaumpedersen

import (
	"sync"
	"testing"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/chaumpedersen/big"
)

// scriptedSource returns predetermined values from UniformBelow.
type scriptedSource struct {
	values []int64
}

func (s *scriptedSource) UniformBelow(bound *big.Int) (*big.Int, error) {
	if len(s.values) == 0 {
		return nil, errors.WrapPrefix(ErrRandomnessUnavailable, "script exhausted", 0)
	}
	v := big.NewInt(s.values[0])
	s.values = s.values[1:]
	return v, nil
}

func (s *scriptedSource) RandomString(length int) (string, error) {
	return "", errors.New("not scripted")
}

func TestSessionFixedValues(t *testing.T) {
	sk := testKey(t)
	prover := NewProver(sk, &scriptedSource{values: []int64{7}})
	verifier := NewVerifier(sk.Public(), &scriptedSource{values: []int64{4}})

	commitment, err := prover.Commit()
	require.NoError(t, err)
	require.Equal(t, int64(8), commitment.R1.Int64())
	require.Equal(t, int64(4), commitment.R2.Int64())
	require.Equal(t, StateCommitted, prover.State())

	c, err := verifier.Challenge(commitment)
	require.NoError(t, err)
	require.Equal(t, int64(4), c.Int64())
	require.Equal(t, StateChallenged, verifier.State())

	s, err := prover.Respond(c)
	require.NoError(t, err)
	require.Equal(t, int64(5), s.Int64())
	require.Equal(t, StateTerminal, prover.State())

	require.True(t, verifier.Verify(s))
	require.Equal(t, StateVerified, verifier.State())

	transcript, err := verifier.Transcript()
	require.NoError(t, err)
	require.Equal(t, int64(8), transcript.R1.Int64())
	require.Equal(t, int64(4), transcript.R2.Int64())
	require.Equal(t, int64(4), transcript.C.Int64())
	require.Equal(t, int64(5), transcript.S.Int64())
	require.True(t, transcript.Verify(sk.Public()))
}

func TestSessionRandom(t *testing.T) {
	group, err := GenerateGroup(testCPRNG(t, 3), 256)
	require.NoError(t, err)
	sk, err := GenerateKey(group, DefaultRandomSource())
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		prover := NewProver(sk, DefaultRandomSource())
		verifier := NewVerifier(sk.Public(), DefaultRandomSource())
		commitment, err := prover.Commit()
		require.NoError(t, err)
		c, err := verifier.Challenge(commitment)
		require.NoError(t, err)
		s, err := prover.Respond(c)
		require.NoError(t, err)
		require.True(t, verifier.Verify(s))
	}
}

func TestSessionWrongResponse(t *testing.T) {
	sk := testKey(t)
	prover := NewProver(sk, &scriptedSource{values: []int64{7}})
	verifier := NewVerifier(sk.Public(), &scriptedSource{values: []int64{4}})

	commitment, err := prover.Commit()
	require.NoError(t, err)
	c, err := verifier.Challenge(commitment)
	require.NoError(t, err)
	_, err = prover.Respond(c)
	require.NoError(t, err)

	require.False(t, verifier.Verify(big.NewInt(6)))
	require.Equal(t, StateRejected, verifier.State())
	// a session is over once decided
	require.False(t, verifier.Verify(big.NewInt(5)))
	require.Equal(t, StateRejected, verifier.State())

	transcript, err := verifier.Transcript()
	require.NoError(t, err)
	require.False(t, transcript.Verify(sk.Public()))
}

func TestSessionWrongSecret(t *testing.T) {
	sk := testKey(t)
	impostor, err := NewPrivateKey(ToyGroup(), big.NewInt(5))
	require.NoError(t, err)

	prover := NewProver(impostor, &scriptedSource{values: []int64{7}})
	verifier := NewVerifier(sk.Public(), &scriptedSource{values: []int64{4}})
	commitment, err := prover.Commit()
	require.NoError(t, err)
	c, err := verifier.Challenge(commitment)
	require.NoError(t, err)
	s, err := prover.Respond(c)
	require.NoError(t, err)
	require.False(t, verifier.Verify(s))
}

func TestProverState(t *testing.T) {
	sk := testKey(t)
	prover := NewProver(sk, &scriptedSource{values: []int64{7}})
	require.Equal(t, StateStart, prover.State())

	_, err := prover.Respond(big.NewInt(4))
	require.True(t, errors.Is(err, ErrInvalidState))

	_, err = prover.Commit()
	require.NoError(t, err)
	_, err = prover.Commit()
	require.True(t, errors.Is(err, ErrInvalidState))

	// an out of range challenge leaves the session usable
	_, err = prover.Respond(big.NewInt(11))
	require.True(t, errors.Is(err, ErrInvalidRange))
	require.Equal(t, StateCommitted, prover.State())

	_, err = prover.Respond(big.NewInt(4))
	require.NoError(t, err)
	// the nonce answers a single challenge only
	_, err = prover.Respond(big.NewInt(3))
	require.True(t, errors.Is(err, ErrInvalidState))
	require.Nil(t, prover.nonce)
}

func TestVerifierState(t *testing.T) {
	sk := testKey(t)
	verifier := NewVerifier(sk.Public(), &scriptedSource{values: []int64{4, 4}})
	require.Equal(t, StateStart, verifier.State())

	require.False(t, verifier.Verify(big.NewInt(5)))
	require.Equal(t, StateStart, verifier.State())
	_, err := verifier.Transcript()
	require.True(t, errors.Is(err, ErrInvalidState))

	_, err = verifier.Challenge(nil)
	require.True(t, errors.Is(err, ErrInvalidRange))
	_, err = verifier.Challenge(&Commitment{R1: big.NewInt(23), R2: big.NewInt(4)})
	require.True(t, errors.Is(err, ErrInvalidRange))
	require.Equal(t, StateStart, verifier.State())

	_, err = verifier.Challenge(&Commitment{R1: big.NewInt(8), R2: big.NewInt(4)})
	require.NoError(t, err)
	_, err = verifier.Challenge(&Commitment{R1: big.NewInt(8), R2: big.NewInt(4)})
	require.True(t, errors.Is(err, ErrInvalidState))

	_, err = verifier.Transcript()
	require.True(t, errors.Is(err, ErrInvalidState))
}

func TestVerifyOutOfOrderLogged(t *testing.T) {
	hook := new(test.Hook)
	old := Logger.ReplaceHooks(make(logrus.LevelHooks))
	defer Logger.ReplaceHooks(old)
	Logger.AddHook(hook)

	verifier := NewVerifier(testKey(t).Public(), &scriptedSource{})
	require.False(t, verifier.Verify(big.NewInt(5)))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, "verifier", entry.Data["role"])
	require.Equal(t, StateStart, entry.Data["state"])
}

func TestVerifierMissingResponse(t *testing.T) {
	sk := testKey(t)
	verifier := NewVerifier(sk.Public(), &scriptedSource{values: []int64{4}})
	_, err := verifier.Challenge(&Commitment{R1: big.NewInt(8), R2: big.NewInt(4)})
	require.NoError(t, err)
	require.False(t, verifier.Verify(nil))
	require.Equal(t, StateRejected, verifier.State())
	_, err = verifier.Transcript()
	require.True(t, errors.Is(err, ErrInvalidState))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "start", StateStart.String())
	require.Equal(t, "verified", StateVerified.String())
	require.Equal(t, "unknown", State(42).String())
}

func TestConcurrentSessions(t *testing.T) {
	sk := testKey(t)
	var wg sync.WaitGroup
	results := make([]bool, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prover := NewProver(sk, DefaultRandomSource())
			verifier := NewVerifier(sk.Public(), DefaultRandomSource())
			commitment, err := prover.Commit()
			if err != nil {
				return
			}
			c, err := verifier.Challenge(commitment)
			if err != nil {
				return
			}
			s, err := prover.Respond(c)
			if err != nil {
				return
			}
			results[i] = verifier.Verify(s)
		}(i)
	}
	wg.Wait()
	for i, ok := range results {
		require.True(t, ok, "session %d", i)
	}
}
