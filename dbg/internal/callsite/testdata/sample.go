package sample

func sample() {
	x := 5
	dbg.Dbg(x + 1)
	dbg.Unsafe[Point](p)
	dbg.All(x, dbg.As[int](x*2), "a normal string")
	dbg.All(
		x,
		y,
	)
	dbg.Dbg(dbg.Dbg(x))
	dbg.All(xs...)
	dbg.Here()
	_ = dbg.Dbg(a) + dbg.Dbg(b)
	dbg.All(
		dbg.All(x),
	)
}
