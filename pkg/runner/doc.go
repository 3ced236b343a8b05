/*
Package runner implements the frame loop that drives a state machine.

A machine does nothing on its own: something has to call Tick. The runner does it with a
fixed simulated step, optionally paced against the wall clock, and unwinds the stack when
the loop ends for any reason.

# Usage

	m := hsm.NewMachine(reg, "alive", agent)

	ctx, stop := runner.SignalContext(context.Background())
	defer stop()

	r := runner.New(m,
		runner.WithStep(16*time.Millisecond),
		runner.WithInterval(16*time.Millisecond),
		runner.WithOnFrame(func(f runner.Frame) { ... }),
	)
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
*/
package runner
