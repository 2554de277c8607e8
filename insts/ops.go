package insts

// Op is an Emotion Engine opcode. Pseudo ops only appear after Normalize.
type Op uint16

// Opcodes.
const (
	OpUnknown Op = iota

	// Primary opcode ops.
	OpJ
	OpJAL
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI
	OpBEQL
	OpBNEL
	OpBLEZL
	OpBGTZL
	OpDADDI
	OpDADDIU
	OpLDL
	OpLDR
	OpLQ
	OpSQ
	OpLB
	OpLH
	OpLWL
	OpLW
	OpLBU
	OpLHU
	OpLWR
	OpLWU
	OpSB
	OpSH
	OpSWL
	OpSW
	OpSDL
	OpSDR
	OpSWR
	OpCACHE
	OpLWC1
	OpPREF
	OpLQC2
	OpLD
	OpSWC1
	OpSQC2
	OpSD

	// SPECIAL ops.
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV
	OpJR
	OpJALR
	OpMOVZ
	OpMOVN
	OpSYSCALL
	OpBREAK
	OpSYNC
	OpMFHI
	OpMTHI
	OpMFLO
	OpMTLO
	OpDSLLV
	OpDSRLV
	OpDSRAV
	OpMULT
	OpMULTU
	OpDIV
	OpDIVU
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpMFSA
	OpMTSA
	OpSLT
	OpSLTU
	OpDADD
	OpDADDU
	OpDSUB
	OpDSUBU
	OpTEQ
	OpDSLL
	OpDSRL
	OpDSRA
	OpDSLL32
	OpDSRL32
	OpDSRA32

	// REGIMM ops.
	OpBLTZ
	OpBGEZ
	OpBLTZL
	OpBGEZL
	OpBLTZAL
	OpBGEZAL
	OpBLTZALL
	OpBGEZALL
	OpMTSAB
	OpMTSAH

	// COP0 ops.
	OpMFC0
	OpMTC0
	OpBC0F
	OpBC0T
	OpBC0FL
	OpBC0TL
	OpTLBR
	OpTLBWI
	OpTLBWR
	OpTLBP
	OpERET
	OpEI
	OpDI

	// COP1 ops.
	OpMFC1
	OpMTC1
	OpCFC1
	OpCTC1
	OpBC1F
	OpBC1T
	OpBC1FL
	OpBC1TL
	OpADDS
	OpSUBS
	OpMULS
	OpDIVS
	OpSQRTS
	OpABSS
	OpMOVS
	OpNEGS
	OpRSQRTS
	OpADDAS
	OpSUBAS
	OpMULAS
	OpMADDS
	OpMSUBS
	OpMADDAS
	OpMSUBAS
	OpCVTWS
	OpMAXS
	OpMINS
	OpCFS
	OpCEQS
	OpCLTS
	OpCLES
	OpCVTSW

	// COP2 transfer ops.
	OpQMFC2
	OpQMTC2
	OpCFC2
	OpCTC2
	OpBC2F
	OpBC2T
	OpBC2FL
	OpBC2TL

	// MMI ops.
	OpMADD
	OpMADDU
	OpPLZCW
	OpMFHI1
	OpMTHI1
	OpMFLO1
	OpMTLO1
	OpMULT1
	OpMULTU1
	OpDIV1
	OpDIVU1
	OpMADD1
	OpMADDU1
	OpPMTHL
	OpPSLLH
	OpPSRLH
	OpPSRAH
	OpPSLLW
	OpPSRLW
	OpPSRAW
	OpPMFHLLW
	OpPMFHLUW
	OpPMFHLSLW
	OpPMFHLLH
	OpPMFHLSH

	// MMI0 ops.
	OpPADDW
	OpPSUBW
	OpPCGTW
	OpPMAXW
	OpPADDH
	OpPSUBH
	OpPCGTH
	OpPMAXH
	OpPADDB
	OpPSUBB
	OpPCGTB
	OpPADDSW
	OpPSUBSW
	OpPEXTLW
	OpPPACW
	OpPADDSH
	OpPSUBSH
	OpPEXTLH
	OpPPACH
	OpPADDSB
	OpPSUBSB
	OpPEXTLB
	OpPPACB
	OpPEXT5
	OpPPAC5

	// MMI1 ops.
	OpPABSW
	OpPCEQW
	OpPMINW
	OpPADSBH
	OpPABSH
	OpPCEQH
	OpPMINH
	OpPCEQB
	OpPADDUW
	OpPSUBUW
	OpPEXTUW
	OpPADDUH
	OpPSUBUH
	OpPEXTUH
	OpPADDUB
	OpPSUBUB
	OpPEXTUB
	OpQFSRV

	// MMI2 ops.
	OpPMADDW
	OpPSLLVW
	OpPSRLVW
	OpPMSUBW
	OpPMFHI
	OpPMFLO
	OpPINTH
	OpPMULTW
	OpPDIVW
	OpPCPYLD
	OpPMADDH
	OpPHMADH
	OpPAND
	OpPXOR
	OpPMSUBH
	OpPHMSBH
	OpPEXEH
	OpPREVH
	OpPMULTH
	OpPDIVBW
	OpPEXEW
	OpPROT3W

	// MMI3 ops.
	OpPMADDUW
	OpPSRAVW
	OpPMTHI
	OpPMTLO
	OpPINTEH
	OpPMULTUW
	OpPDIVUW
	OpPCPYUD
	OpPOR
	OpPNOR
	OpPEXCH
	OpPCPYH
	OpPEXCW

	// VU macro ops (funct table).
	OpVADDBC
	OpVSUBBC
	OpVMADDBC
	OpVMSUBBC
	OpVMAXBC
	OpVMINIBC
	OpVMULBC
	OpVMULQ
	OpVMAXI
	OpVMULI
	OpVMINII
	OpVADDQ
	OpVMADDQ
	OpVADDI
	OpVMADDI
	OpVSUBQ
	OpVMSUBQ
	OpVSUBI
	OpVMSUBI
	OpVADD
	OpVMADD
	OpVMUL
	OpVMAX
	OpVSUB
	OpVMSUB
	OpVOPMSUB
	OpVMINI
	OpVIADD
	OpVISUB
	OpVIADDI
	OpVIAND
	OpVIOR
	OpVCALLMS
	OpVCALLMSR

	// VU macro ops (special2 table).
	OpVADDABC
	OpVSUBABC
	OpVMADDABC
	OpVMSUBABC
	OpVITOF0
	OpVITOF4
	OpVITOF12
	OpVITOF15
	OpVFTOI0
	OpVFTOI4
	OpVFTOI12
	OpVFTOI15
	OpVMULABC
	OpVMULAQ
	OpVABS
	OpVMULAI
	OpVCLIP
	OpVADDAQ
	OpVMADDAQ
	OpVADDAI
	OpVMADDAI
	OpVSUBAQ
	OpVMSUBAQ
	OpVSUBAI
	OpVMSUBAI
	OpVADDA
	OpVMADDA
	OpVMULA
	OpVSUBA
	OpVMSUBA
	OpVOPMULA
	OpVNOP
	OpVMOVE
	OpVMR32
	OpVLQI
	OpVSQI
	OpVLQD
	OpVSQD
	OpVDIV
	OpVSQRT
	OpVRSQRT
	OpVWAITQ
	OpVMTIR
	OpVMFIR
	OpVILWR
	OpVISWR
	OpVRNEXT
	OpVRGET
	OpVRINIT
	OpVRXOR

	// Pseudo ops produced by Normalize.
	OpNOP
	OpLI
	OpDLI
	OpMOVE
	OpDMOVE
	OpQMOVE
	OpB
	OpBAL
	OpBEQZ
	OpBNEZ
	OpBEQZL
	OpBNEZL
	OpNEGU
	OpNOT

	opCount
)

var opNames = [opCount]string{
	OpUnknown:  "unknown",
	OpJ:        "j",
	OpJAL:      "jal",
	OpBEQ:      "beq",
	OpBNE:      "bne",
	OpBLEZ:     "blez",
	OpBGTZ:     "bgtz",
	OpADDI:     "addi",
	OpADDIU:    "addiu",
	OpSLTI:     "slti",
	OpSLTIU:    "sltiu",
	OpANDI:     "andi",
	OpORI:      "ori",
	OpXORI:     "xori",
	OpLUI:      "lui",
	OpBEQL:     "beql",
	OpBNEL:     "bnel",
	OpBLEZL:    "blezl",
	OpBGTZL:    "bgtzl",
	OpDADDI:    "daddi",
	OpDADDIU:   "daddiu",
	OpLDL:      "ldl",
	OpLDR:      "ldr",
	OpLQ:       "lq",
	OpSQ:       "sq",
	OpLB:       "lb",
	OpLH:       "lh",
	OpLWL:      "lwl",
	OpLW:       "lw",
	OpLBU:      "lbu",
	OpLHU:      "lhu",
	OpLWR:      "lwr",
	OpLWU:      "lwu",
	OpSB:       "sb",
	OpSH:       "sh",
	OpSWL:      "swl",
	OpSW:       "sw",
	OpSDL:      "sdl",
	OpSDR:      "sdr",
	OpSWR:      "swr",
	OpCACHE:    "cache",
	OpLWC1:     "lwc1",
	OpPREF:     "pref",
	OpLQC2:     "lqc2",
	OpLD:       "ld",
	OpSWC1:     "swc1",
	OpSQC2:     "sqc2",
	OpSD:       "sd",
	OpSLL:      "sll",
	OpSRL:      "srl",
	OpSRA:      "sra",
	OpSLLV:     "sllv",
	OpSRLV:     "srlv",
	OpSRAV:     "srav",
	OpJR:       "jr",
	OpJALR:     "jalr",
	OpMOVZ:     "movz",
	OpMOVN:     "movn",
	OpSYSCALL:  "syscall",
	OpBREAK:    "break",
	OpSYNC:     "sync",
	OpMFHI:     "mfhi",
	OpMTHI:     "mthi",
	OpMFLO:     "mflo",
	OpMTLO:     "mtlo",
	OpDSLLV:    "dsllv",
	OpDSRLV:    "dsrlv",
	OpDSRAV:    "dsrav",
	OpMULT:     "mult",
	OpMULTU:    "multu",
	OpDIV:      "div",
	OpDIVU:     "divu",
	OpADD:      "add",
	OpADDU:     "addu",
	OpSUB:      "sub",
	OpSUBU:     "subu",
	OpAND:      "and",
	OpOR:       "or",
	OpXOR:      "xor",
	OpNOR:      "nor",
	OpMFSA:     "mfsa",
	OpMTSA:     "mtsa",
	OpSLT:      "slt",
	OpSLTU:     "sltu",
	OpDADD:     "dadd",
	OpDADDU:    "daddu",
	OpDSUB:     "dsub",
	OpDSUBU:    "dsubu",
	OpTEQ:      "teq",
	OpDSLL:     "dsll",
	OpDSRL:     "dsrl",
	OpDSRA:     "dsra",
	OpDSLL32:   "dsll32",
	OpDSRL32:   "dsrl32",
	OpDSRA32:   "dsra32",
	OpBLTZ:     "bltz",
	OpBGEZ:     "bgez",
	OpBLTZL:    "bltzl",
	OpBGEZL:    "bgezl",
	OpBLTZAL:   "bltzal",
	OpBGEZAL:   "bgezal",
	OpBLTZALL:  "bltzall",
	OpBGEZALL:  "bgezall",
	OpMTSAB:    "mtsab",
	OpMTSAH:    "mtsah",
	OpMFC0:     "mfc0",
	OpMTC0:     "mtc0",
	OpBC0F:     "bc0f",
	OpBC0T:     "bc0t",
	OpBC0FL:    "bc0fl",
	OpBC0TL:    "bc0tl",
	OpTLBR:     "tlbr",
	OpTLBWI:    "tlbwi",
	OpTLBWR:    "tlbwr",
	OpTLBP:     "tlbp",
	OpERET:     "eret",
	OpEI:       "ei",
	OpDI:       "di",
	OpMFC1:     "mfc1",
	OpMTC1:     "mtc1",
	OpCFC1:     "cfc1",
	OpCTC1:     "ctc1",
	OpBC1F:     "bc1f",
	OpBC1T:     "bc1t",
	OpBC1FL:    "bc1fl",
	OpBC1TL:    "bc1tl",
	OpADDS:     "add.s",
	OpSUBS:     "sub.s",
	OpMULS:     "mul.s",
	OpDIVS:     "div.s",
	OpSQRTS:    "sqrt.s",
	OpABSS:     "abs.s",
	OpMOVS:     "mov.s",
	OpNEGS:     "neg.s",
	OpRSQRTS:   "rsqrt.s",
	OpADDAS:    "adda.s",
	OpSUBAS:    "suba.s",
	OpMULAS:    "mula.s",
	OpMADDS:    "madd.s",
	OpMSUBS:    "msub.s",
	OpMADDAS:   "madda.s",
	OpMSUBAS:   "msuba.s",
	OpCVTWS:    "cvt.w.s",
	OpMAXS:     "max.s",
	OpMINS:     "min.s",
	OpCFS:      "c.f.s",
	OpCEQS:     "c.eq.s",
	OpCLTS:     "c.lt.s",
	OpCLES:     "c.le.s",
	OpCVTSW:    "cvt.s.w",
	OpQMFC2:    "qmfc2",
	OpQMTC2:    "qmtc2",
	OpCFC2:     "cfc2",
	OpCTC2:     "ctc2",
	OpBC2F:     "bc2f",
	OpBC2T:     "bc2t",
	OpBC2FL:    "bc2fl",
	OpBC2TL:    "bc2tl",
	OpMADD:     "madd",
	OpMADDU:    "maddu",
	OpPLZCW:    "plzcw",
	OpMFHI1:    "mfhi1",
	OpMTHI1:    "mthi1",
	OpMFLO1:    "mflo1",
	OpMTLO1:    "mtlo1",
	OpMULT1:    "mult1",
	OpMULTU1:   "multu1",
	OpDIV1:     "div1",
	OpDIVU1:    "divu1",
	OpMADD1:    "madd1",
	OpMADDU1:   "maddu1",
	OpPMTHL:    "pmthl",
	OpPSLLH:    "psllh",
	OpPSRLH:    "psrlh",
	OpPSRAH:    "psrah",
	OpPSLLW:    "psllw",
	OpPSRLW:    "psrlw",
	OpPSRAW:    "psraw",
	OpPMFHLLW:  "pmfhl.lw",
	OpPMFHLUW:  "pmfhl.uw",
	OpPMFHLSLW: "pmfhl.slw",
	OpPMFHLLH:  "pmfhl.lh",
	OpPMFHLSH:  "pmfhl.sh",
	OpPADDW:    "paddw",
	OpPSUBW:    "psubw",
	OpPCGTW:    "pcgtw",
	OpPMAXW:    "pmaxw",
	OpPADDH:    "paddh",
	OpPSUBH:    "psubh",
	OpPCGTH:    "pcgth",
	OpPMAXH:    "pmaxh",
	OpPADDB:    "paddb",
	OpPSUBB:    "psubb",
	OpPCGTB:    "pcgtb",
	OpPADDSW:   "paddsw",
	OpPSUBSW:   "psubsw",
	OpPEXTLW:   "pextlw",
	OpPPACW:    "ppacw",
	OpPADDSH:   "paddsh",
	OpPSUBSH:   "psubsh",
	OpPEXTLH:   "pextlh",
	OpPPACH:    "ppach",
	OpPADDSB:   "paddsb",
	OpPSUBSB:   "psubsb",
	OpPEXTLB:   "pextlb",
	OpPPACB:    "ppacb",
	OpPEXT5:    "pext5",
	OpPPAC5:    "ppac5",
	OpPABSW:    "pabsw",
	OpPCEQW:    "pceqw",
	OpPMINW:    "pminw",
	OpPADSBH:   "padsbh",
	OpPABSH:    "pabsh",
	OpPCEQH:    "pceqh",
	OpPMINH:    "pminh",
	OpPCEQB:    "pceqb",
	OpPADDUW:   "padduw",
	OpPSUBUW:   "psubuw",
	OpPEXTUW:   "pextuw",
	OpPADDUH:   "padduh",
	OpPSUBUH:   "psubuh",
	OpPEXTUH:   "pextuh",
	OpPADDUB:   "paddub",
	OpPSUBUB:   "psubub",
	OpPEXTUB:   "pextub",
	OpQFSRV:    "qfsrv",
	OpPMADDW:   "pmaddw",
	OpPSLLVW:   "psllvw",
	OpPSRLVW:   "psrlvw",
	OpPMSUBW:   "pmsubw",
	OpPMFHI:    "pmfhi",
	OpPMFLO:    "pmflo",
	OpPINTH:    "pinth",
	OpPMULTW:   "pmultw",
	OpPDIVW:    "pdivw",
	OpPCPYLD:   "pcpyld",
	OpPMADDH:   "pmaddh",
	OpPHMADH:   "phmadh",
	OpPAND:     "pand",
	OpPXOR:     "pxor",
	OpPMSUBH:   "pmsubh",
	OpPHMSBH:   "phmsbh",
	OpPEXEH:    "pexeh",
	OpPREVH:    "prevh",
	OpPMULTH:   "pmulth",
	OpPDIVBW:   "pdivbw",
	OpPEXEW:    "pexew",
	OpPROT3W:   "prot3w",
	OpPMADDUW:  "pmadduw",
	OpPSRAVW:   "psravw",
	OpPMTHI:    "pmthi",
	OpPMTLO:    "pmtlo",
	OpPINTEH:   "pinteh",
	OpPMULTUW:  "pmultuw",
	OpPDIVUW:   "pdivuw",
	OpPCPYUD:   "pcpyud",
	OpPOR:      "por",
	OpPNOR:     "pnor",
	OpPEXCH:    "pexch",
	OpPCPYH:    "pcpyh",
	OpPEXCW:    "pexcw",
	OpVADDBC:   "vaddbc",
	OpVSUBBC:   "vsubbc",
	OpVMADDBC:  "vmaddbc",
	OpVMSUBBC:  "vmsubbc",
	OpVMAXBC:   "vmaxbc",
	OpVMINIBC:  "vminibc",
	OpVMULBC:   "vmulbc",
	OpVMULQ:    "vmulq",
	OpVMAXI:    "vmaxi",
	OpVMULI:    "vmuli",
	OpVMINII:   "vminii",
	OpVADDQ:    "vaddq",
	OpVMADDQ:   "vmaddq",
	OpVADDI:    "vaddi",
	OpVMADDI:   "vmaddi",
	OpVSUBQ:    "vsubq",
	OpVMSUBQ:   "vmsubq",
	OpVSUBI:    "vsubi",
	OpVMSUBI:   "vmsubi",
	OpVADD:     "vadd",
	OpVMADD:    "vmadd",
	OpVMUL:     "vmul",
	OpVMAX:     "vmax",
	OpVSUB:     "vsub",
	OpVMSUB:    "vmsub",
	OpVOPMSUB:  "vopmsub",
	OpVMINI:    "vmini",
	OpVIADD:    "viadd",
	OpVISUB:    "visub",
	OpVIADDI:   "viaddi",
	OpVIAND:    "viand",
	OpVIOR:     "vior",
	OpVCALLMS:  "vcallms",
	OpVCALLMSR: "vcallmsr",
	OpVADDABC:  "vaddabc",
	OpVSUBABC:  "vsubabc",
	OpVMADDABC: "vmaddabc",
	OpVMSUBABC: "vmsubabc",
	OpVITOF0:   "vitof0",
	OpVITOF4:   "vitof4",
	OpVITOF12:  "vitof12",
	OpVITOF15:  "vitof15",
	OpVFTOI0:   "vftoi0",
	OpVFTOI4:   "vftoi4",
	OpVFTOI12:  "vftoi12",
	OpVFTOI15:  "vftoi15",
	OpVMULABC:  "vmulabc",
	OpVMULAQ:   "vmulaq",
	OpVABS:     "vabs",
	OpVMULAI:   "vmulai",
	OpVCLIP:    "vclip",
	OpVADDAQ:   "vaddaq",
	OpVMADDAQ:  "vmaddaq",
	OpVADDAI:   "vaddai",
	OpVMADDAI:  "vmaddai",
	OpVSUBAQ:   "vsubaq",
	OpVMSUBAQ:  "vmsubaq",
	OpVSUBAI:   "vsubai",
	OpVMSUBAI:  "vmsubai",
	OpVADDA:    "vadda",
	OpVMADDA:   "vmadda",
	OpVMULA:    "vmula",
	OpVSUBA:    "vsuba",
	OpVMSUBA:   "vmsuba",
	OpVOPMULA:  "vopmula",
	OpVNOP:     "vnop",
	OpVMOVE:    "vmove",
	OpVMR32:    "vmr32",
	OpVLQI:     "vlqi",
	OpVSQI:     "vsqi",
	OpVLQD:     "vlqd",
	OpVSQD:     "vsqd",
	OpVDIV:     "vdiv",
	OpVSQRT:    "vsqrt",
	OpVRSQRT:   "vrsqrt",
	OpVWAITQ:   "vwaitq",
	OpVMTIR:    "vmtir",
	OpVMFIR:    "vmfir",
	OpVILWR:    "vilwr",
	OpVISWR:    "viswr",
	OpVRNEXT:   "vrnext",
	OpVRGET:    "vrget",
	OpVRINIT:   "vrinit",
	OpVRXOR:    "vrxor",
	OpNOP:      "nop",
	OpLI:       "li",
	OpDLI:      "dli",
	OpMOVE:     "move",
	OpDMOVE:    "dmove",
	OpQMOVE:    "qmove",
	OpB:        "b",
	OpBAL:      "bal",
	OpBEQZ:     "beqz",
	OpBNEZ:     "bnez",
	OpBEQZL:    "beqzl",
	OpBNEZL:    "bnezl",
	OpNEGU:     "negu",
	OpNOT:      "not",
}

// String returns the canonical mnemonic.
func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}
	return "unknown"
}

// IsPseudo reports whether op is a display form produced by Normalize.
func (op Op) IsPseudo() bool {
	return op >= OpNOP && op < opCount
}
